package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/planlint/planlint/pkg/core"
)

// IndexFile is the name of the registry index inside the schema directory.
const IndexFile = "index.json"

// Loader loads the schema registry from a directory and compiles every
// referenced schema. Load must be called once before any accessor; after
// that the Loader is read-only and safe for concurrent use.
type Loader struct {
	dir      string
	engine   Engine
	logger   *slog.Logger
	registry *Registry
	compiled map[string]*CompiledSchema
}

// NewLoader creates a Loader for the given schema directory. A nil engine
// selects the default draft-7 engine; a nil logger selects slog.Default.
func NewLoader(dir string, engine Engine, logger *slog.Logger) *Loader {
	if engine == nil {
		engine = DefaultEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:      dir,
		engine:   engine,
		logger:   logger,
		compiled: make(map[string]*CompiledSchema),
	}
}

// Load reads the index file and compiles each document type's schema.
// A missing index is fatal; a missing schema file only disables that type
// (with a warning). A schema that fails to compile fails the whole load.
func (l *Loader) Load() error {
	indexPath := filepath.Join(l.dir, IndexFile)

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrSchemaIndexNotFound, indexPath)
		}
		return fmt.Errorf("failed to read schema index %q: %w", indexPath, err)
	}

	var registry Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return fmt.Errorf("failed to parse schema index %q: %w", indexPath, err)
	}

	for _, def := range registry.DocumentTypes {
		if err := l.loadSchema(def); err != nil {
			return err
		}
	}

	l.registry = &registry
	l.logger.Debug("schemas loaded", "count", len(l.compiled))
	return nil
}

func (l *Loader) loadSchema(def DocumentTypeDefinition) error {
	path := filepath.Join(l.dir, def.Schema)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The type simply stays unknown to validation.
			l.logger.Warn("schema file not found, skipping type", "type", def.Type, "path", path)
			return nil
		}
		return &core.SchemaError{Type: def.Type, Err: err}
	}

	var meta struct {
		Structural StructuralRequirements `json:"structuralRequirements"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return &core.SchemaError{Type: def.Type, Err: err}
	}

	checker, err := l.engine.Compile(def.Schema, data)
	if err != nil {
		return &core.SchemaError{Type: def.Type, Err: err}
	}

	l.compiled[def.Type] = &CompiledSchema{
		Definition: def,
		Checker:    checker,
		Structure:  meta.Structural,
	}
	return nil
}

// GetSchema returns the compiled schema for a document type.
func (l *Loader) GetSchema(docType string) (*CompiledSchema, bool) {
	s, ok := l.compiled[docType]
	return s, ok
}

// DocumentTypes returns every type definition from the index.
func (l *Loader) DocumentTypes() []DocumentTypeDefinition {
	if l.registry == nil {
		return nil
	}
	return l.registry.DocumentTypes
}

// IsValidType reports whether a document type has a compiled schema.
func (l *Loader) IsValidType(docType string) bool {
	_, ok := l.compiled[docType]
	return ok
}

// RequiredSections returns the sections a document type must contain.
func (l *Loader) RequiredSections(docType string) []string {
	if s, ok := l.compiled[docType]; ok && s.Structure.Sections != nil {
		return s.Structure.Sections.Required
	}
	return nil
}

// OptionalSections returns the sections a document type may contain.
func (l *Loader) OptionalSections(docType string) []string {
	if s, ok := l.compiled[docType]; ok && s.Structure.Sections != nil {
		return s.Structure.Sections.Optional
	}
	return nil
}

// IsAbstractRequired reports whether a document type needs an abstract.
func (l *Loader) IsAbstractRequired(docType string) bool {
	if s, ok := l.compiled[docType]; ok && s.Structure.Abstract != nil {
		return s.Structure.Abstract.Required
	}
	return false
}

// TitleFormat returns the title format hint for a document type, or "".
func (l *Loader) TitleFormat(docType string) string {
	if s, ok := l.compiled[docType]; ok && s.Structure.Title != nil {
		return s.Structure.Title.Format
	}
	return ""
}

// ValidateAttributes checks a document's attribute map against the type's
// schema and returns one message per violation. The loader is not mutated.
func (l *Loader) ValidateAttributes(docType string, attrs core.Attributes) ([]string, error) {
	s, ok := l.compiled[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownDocumentType, docType)
	}

	value := make(map[string]any, len(attrs))
	for k, v := range attrs {
		value[k] = v
	}

	return s.Checker.Check(value), nil
}
