package linter

import (
	"github.com/aretw0/introspection"
)

// LinterState exposes internal state for observability.
type LinterState struct {
	SchemaPath       string   `json:"schema_path"`
	SchemasLoaded    int      `json:"schemas_loaded"`
	DocumentTypes    []string `json:"document_types"`
	Workers          int      `json:"workers"`
	DocumentsIndexed int      `json:"documents_indexed"`
}

// State implements introspection.Introspectable.
func (l *Linter) State() any {
	l.mu.Lock()
	defer l.mu.Unlock()

	types := l.schemas.DocumentTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Type)
	}

	return LinterState{
		SchemaPath:       l.config.SchemaPath,
		SchemasLoaded:    len(types),
		DocumentTypes:    names,
		Workers:          l.workers,
		DocumentsIndexed: l.lastIndexed,
	}
}

// ComponentType implements introspection.Component.
func (l *Linter) ComponentType() string {
	return "linter"
}

var _ introspection.Introspectable = (*Linter)(nil)
var _ introspection.Component = (*Linter)(nil)
