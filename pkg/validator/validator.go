package validator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/schema"
)

// Config tunes per-document checks.
type Config struct {
	// MaxTitleLength warns when a document title exceeds this many
	// characters. Zero disables the check.
	MaxTitleLength int
	// SkipIDFormat disables the id-format rule.
	SkipIDFormat bool
	// SkipStructure disables the required-sections and required-abstract
	// rules. Attribute schema validation still runs.
	SkipStructure bool
}

// Validator validates documents against the schema registry and maintains
// the cross-document index for a whole run.
//
// The run is two-phase: Validate is called once per document (safe from
// parallel workers), then, after every worker has finished,
// ResolveReferences and CheckDuplicateIDs complete the cross-document
// checks by appending findings to the results Validate produced. The
// phase boundary is the caller's join point; neither phase-two method may
// run concurrently with Validate.
type Validator struct {
	schemas *schema.Loader
	index   *DocumentIndex
	cfg     Config

	mu      sync.Mutex
	results map[string]*core.ValidationResult
	pending []pendingRef
}

type pendingRef struct {
	result *core.ValidationResult
	ref    core.CrossReference
}

// New creates a Validator around a loaded schema registry and a shared
// document index. A nil index gets a fresh one.
func New(schemas *schema.Loader, index *DocumentIndex, cfg Config) *Validator {
	if index == nil {
		index = NewDocumentIndex()
	}
	return &Validator{
		schemas: schemas,
		index:   index,
		cfg:     cfg,
		results: make(map[string]*core.ValidationResult),
	}
}

// Index returns the shared document index.
func (v *Validator) Index() *DocumentIndex {
	return v.index
}

// Validate runs every per-document check and indexes the document.
// Internal cross-references are only recorded here; they are resolved by
// ResolveReferences once the whole batch has been indexed.
func (v *Validator) Validate(doc *core.Document) *core.ValidationResult {
	result := &core.ValidationResult{Path: doc.Path, Valid: true}

	if !doc.HasRequiredStructure() {
		result.AddError(core.ValidationError{
			Kind: core.KindStructure,
			Message: fmt.Sprintf("Document missing required attributes (:%s:, :%s:, :%s:)",
				core.AttrType, core.AttrID, core.AttrSchemaVersion),
			Rule:       "require-structure",
			Suggestion: "Add the required attributes to the document header",
		})
		v.track(result)
		return result
	}

	docType, _ := doc.Type()
	docID, _ := doc.ID()
	result.DocumentType = docType
	result.DocumentID = docID

	if !v.schemas.IsValidType(docType) {
		result.AddError(core.ValidationError{
			Kind:       core.KindSchema,
			Message:    fmt.Sprintf("Unknown document type: %s", docType),
			Rule:       "valid-document-type",
			Suggestion: "Use 'planlint list-types' to see available document types",
		})
	} else {
		v.validateAgainstSchema(doc, docType, result)
	}

	if err := doc.ValidateIDFormat(); err != nil && !v.cfg.SkipIDFormat {
		result.AddError(core.ValidationError{
			Kind:       core.KindFormat,
			Message:    err.Error(),
			Rule:       "id-format",
			Suggestion: "Use only lowercase letters, numbers, and hyphens",
		})
	}

	v.checkReferences(doc, result)

	if docType != "" && docID != "" {
		v.index.Insert(Occurrence{
			Type:  docType,
			ID:    docID,
			Path:  doc.Path,
			Title: doc.Title,
		})
	}

	v.track(result)
	return result
}

// validateAgainstSchema accumulates schema and structural findings for a
// known document type; no short-circuiting between checks.
func (v *Validator) validateAgainstSchema(doc *core.Document, docType string, result *core.ValidationResult) {
	violations, err := v.schemas.ValidateAttributes(docType, doc.Attributes)
	if err != nil {
		result.AddError(core.ValidationError{
			Kind:    core.KindSchema,
			Message: fmt.Sprintf("Schema validation failed: %v", err),
			Rule:    "schema-validation",
		})
	}
	for _, violation := range violations {
		result.AddError(core.ValidationError{
			Kind:     core.KindSchema,
			Message:  violation,
			Location: &core.Location{Section: "attributes"},
			Rule:     "schema-validation",
		})
	}

	if !v.cfg.SkipStructure {
		sectionTitles := make(map[string]bool)
		for _, s := range doc.Level2Sections() {
			sectionTitles[s.Title] = true
		}
		for _, required := range v.schemas.RequiredSections(docType) {
			if !sectionTitles[required] {
				result.AddError(core.ValidationError{
					Kind:       core.KindStructure,
					Message:    fmt.Sprintf("Missing required section: %s", required),
					Rule:       "required-sections",
					Suggestion: fmt.Sprintf("Add a '== %s' section to your document", required),
				})
			}
		}

		if v.schemas.IsAbstractRequired(docType) && doc.AbstractContent() == "" {
			result.AddError(core.ValidationError{
				Kind:       core.KindStructure,
				Message:    "Document requires an abstract",
				Rule:       "required-abstract",
				Suggestion: "Add an [abstract] block after the title",
			})
		}
	}

	// A format hint with a placeholder token is advisory for every
	// document of the type; no title comparison is attempted.
	if format := v.schemas.TitleFormat(docType); strings.Contains(format, "{") {
		result.AddWarning(core.ValidationError{
			Kind:    core.KindFormat,
			Message: fmt.Sprintf("Consider following the recommended title format: %s", format),
			Rule:    "title-format",
		})
	}

	if v.cfg.MaxTitleLength > 0 && len(doc.Title) > v.cfg.MaxTitleLength {
		result.AddWarning(core.ValidationError{
			Kind:    core.KindFormat,
			Message: fmt.Sprintf("Title exceeds %d characters", v.cfg.MaxTitleLength),
			Rule:    "max-title-length",
		})
	}
}

// checkReferences warns on every external reference and queues internal
// ones for the second pass.
func (v *Validator) checkReferences(doc *core.Document, result *core.ValidationResult) {
	for _, ref := range doc.CrossReferences() {
		if ref.External {
			result.AddWarning(core.ValidationError{
				Kind:     core.KindReference,
				Message:  fmt.Sprintf("External reference cannot be validated: %s:%s", ref.Kind, ref.ID),
				Location: &core.Location{Line: ref.Line},
				Rule:     "external-reference",
			})
			continue
		}
		v.mu.Lock()
		v.pending = append(v.pending, pendingRef{result: result, ref: ref})
		v.mu.Unlock()
	}
}

func (v *Validator) track(result *core.ValidationResult) {
	v.mu.Lock()
	v.results[result.Path] = result
	v.mu.Unlock()
}

// ResolveReferences resolves every queued internal reference against the
// now-complete index. Must only be called after all Validate calls have
// returned; forward references resolve correctly because of that barrier.
func (v *Validator) ResolveReferences() {
	for _, p := range v.pending {
		if _, ok := v.index.Resolve(p.ref.Kind, p.ref.ID); ok {
			continue
		}
		p.result.AddError(core.ValidationError{
			Kind:       core.KindReference,
			Message:    fmt.Sprintf("Reference to non-existent document: %s:%s", p.ref.Kind, p.ref.ID),
			Location:   &core.Location{Line: p.ref.Line},
			Rule:       "reference-integrity",
			Suggestion: "Create the referenced document or fix the reference",
		})
	}
	v.pending = nil
}

// CheckDuplicateIDs finds IDs used by more than one document and appends
// one IdConflict error to each affected document's result, naming the
// conflicting occurrences. Must only be called after all Validate calls
// have returned.
func (v *Validator) CheckDuplicateIDs() {
	for id, occs := range v.index.ByID() {
		if len(occs) < 2 {
			continue
		}
		sort.Slice(occs, func(i, j int) bool { return occs[i].Path < occs[j].Path })

		for _, occ := range occs {
			var others []string
			for _, other := range occs {
				if other.Path != occ.Path {
					others = append(others, fmt.Sprintf("%s in %s", other.Type, other.Path))
				}
			}

			result, ok := v.results[occ.Path]
			if !ok {
				continue
			}
			result.AddError(core.ValidationError{
				Kind: core.KindIDConflict,
				Message: fmt.Sprintf("Duplicate ID %q found in %s (conflicts with %s)",
					id, occ.Type, strings.Join(others, ", ")),
				Rule:       "unique-ids",
				Suggestion: "Change one of the conflicting IDs",
			})
		}
	}
}
