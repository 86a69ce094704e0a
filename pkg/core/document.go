// Document is the central entity of the domain.
package core

import (
	"fmt"
	"regexp"
	"strings"
)

// Attribute keys every planning document must carry in its header.
const (
	AttrType          = "planlint-type"
	AttrID            = "id"
	AttrSchemaVersion = "schema-version"
)

// Attributes represents the key-value pairs declared in a document header.
type Attributes map[string]string

// Document is a parsed planning document. It is immutable after parsing:
// derived values (abstract, references, checklists) are recomputed from
// Content on demand and never stored back.
type Document struct {
	Path       string
	Title      string
	Attributes Attributes
	Content    string
	Sections   []Section
}

// Section is a titled span of body text at a given nesting level.
// Level is the number of leading '=' characters; the synthetic section
// created for body text before any heading has level 0.
type Section struct {
	Level   int
	Title   string
	Content string
	Line    int
}

// CrossReference is a declared pointer from one document to another.
// Internal references name a (kind, id) pair inside this document set;
// external references additionally carry a repository and optional version.
type CrossReference struct {
	Kind       string
	ID         string
	Line       int
	External   bool
	Version    string
	Repository string
}

// ChecklistItem is a single task entry in a document body.
type ChecklistItem struct {
	Text    string
	Checked bool
	Line    int
}

var (
	idPattern          = regexp.MustCompile(`^[a-z0-9-]+$`)
	internalRefPattern = regexp.MustCompile(`xref:([a-z-]+):([a-z0-9-]+)(?:\[[^\]]*\])?`)
	externalRefPattern = regexp.MustCompile(`xref:([^#\s]+)#([a-z-]+):([a-z0-9-]+)(?:@([^@\[\]\s]+))?(?:\[[^\]]*\])?`)
	checklistPattern   = regexp.MustCompile(`^\s*\*\s+\[([x ])\]\s+(.+)$`)
)

// abstractMarker opens an abstract block in the document body.
const abstractMarker = "[abstract]"

// HasRequiredStructure reports whether the header declares the three
// attributes every planning document needs: type, id and schema version.
func (d *Document) HasRequiredStructure() bool {
	for _, key := range []string{AttrType, AttrID, AttrSchemaVersion} {
		if _, ok := d.Attributes[key]; !ok {
			return false
		}
	}
	return true
}

// Type returns the declared document type, if any.
func (d *Document) Type() (string, bool) {
	v, ok := d.Attributes[AttrType]
	return v, ok
}

// ID returns the declared document ID, if any.
func (d *Document) ID() (string, bool) {
	v, ok := d.Attributes[AttrID]
	return v, ok
}

// SchemaVersion returns the declared schema version, if any.
func (d *Document) SchemaVersion() (string, bool) {
	v, ok := d.Attributes[AttrSchemaVersion]
	return v, ok
}

// ValidateIDFormat checks the declared ID against the naming rules:
// lowercase alphanumerics and hyphens only, no leading or trailing hyphen,
// no consecutive hyphens. The returned error names the violated rule.
func (d *Document) ValidateIDFormat() error {
	id, ok := d.ID()
	if !ok {
		return &InvalidIDError{Reason: "missing document ID"}
	}
	if !idPattern.MatchString(id) {
		return &InvalidIDError{
			ID:     id,
			Reason: fmt.Sprintf("ID %q must contain only lowercase letters, numbers, and hyphens", id),
		}
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return &InvalidIDError{ID: id, Reason: "ID cannot start or end with a hyphen"}
	}
	if strings.Contains(id, "--") {
		return &InvalidIDError{ID: id, Reason: "ID cannot contain consecutive hyphens"}
	}
	return nil
}

// SectionsWithTitle returns every section whose title matches exactly.
func (d *Document) SectionsWithTitle(title string) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Title == title {
			out = append(out, s)
		}
	}
	return out
}

// Level2Sections returns the top-level (==) sections in document order.
func (d *Document) Level2Sections() []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Level == 2 {
			out = append(out, s)
		}
	}
	return out
}

// AbstractContent returns the text of the [abstract] block, or "" if the
// document has none. The block ends at the first heading, bracket marker,
// or blank line after at least one collected line.
func (d *Document) AbstractContent() string {
	var collected []string
	inAbstract := false

	for _, line := range strings.Split(d.Content, "\n") {
		if strings.TrimSpace(line) == abstractMarker {
			inAbstract = true
			continue
		}
		if !inAbstract {
			continue
		}
		if strings.HasPrefix(line, "=") || (strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")) {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		collected = append(collected, line)
	}

	if len(collected) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Join(collected, "\n"))
}

// CrossReferences extracts every xref in the document body, in line order.
// A single line may yield both internal and external references.
func (d *Document) CrossReferences() []CrossReference {
	var refs []CrossReference

	for i, line := range strings.Split(d.Content, "\n") {
		lineNo := i + 1

		for _, m := range internalRefPattern.FindAllStringSubmatch(line, -1) {
			refs = append(refs, CrossReference{
				Kind: m[1],
				ID:   m[2],
				Line: lineNo,
			})
		}

		for _, m := range externalRefPattern.FindAllStringSubmatch(line, -1) {
			refs = append(refs, CrossReference{
				Kind:       m[2],
				ID:         m[3],
				Line:       lineNo,
				External:   true,
				Version:    m[4],
				Repository: m[1],
			})
		}
	}

	return refs
}

// ChecklistItems extracts task-list entries ("* [ ] text" / "* [x] text").
func (d *Document) ChecklistItems() []ChecklistItem {
	var items []ChecklistItem
	for i, line := range strings.Split(d.Content, "\n") {
		m := checklistPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, ChecklistItem{
			Text:    strings.TrimSpace(m[2]),
			Checked: m[1] == "x",
			Line:    i + 1,
		})
	}
	return items
}
