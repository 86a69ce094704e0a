package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrSchemaIndexNotFound means the schema index file is absent.
	// This is fatal for the whole run.
	ErrSchemaIndexNotFound = errors.New("schema index not found")

	// ErrUnknownDocumentType means a document declared a type the
	// registry does not know.
	ErrUnknownDocumentType = errors.New("unknown document type")
)

// InvalidIDError reports a document ID that violates the naming rules.
type InvalidIDError struct {
	ID     string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid ID format: %s", e.Reason)
}

// SchemaError reports a schema that failed to compile or evaluate.
type SchemaError struct {
	Type string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for type %q: %v", e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
