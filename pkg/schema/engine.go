package schema

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Engine compiles schema documents into reusable checkers. The registry
// depends on this capability but does not own it; any conformant
// implementation can be injected.
type Engine interface {
	// Compile turns a raw schema document into a Checker. The name is
	// used for error reporting and resource resolution.
	Compile(name string, doc []byte) (Checker, error)
}

// Checker validates a value against one compiled schema.
type Checker interface {
	// Check returns one human-readable message per violation.
	// An empty slice means the value is valid.
	Check(value any) []string
}

// draft7Engine is the default Engine, backed by a JSON-Schema draft-7
// compiler.
type draft7Engine struct{}

// DefaultEngine returns the JSON-Schema draft-7 engine.
func DefaultEngine() Engine {
	return draft7Engine{}
}

func (draft7Engine) Compile(name string, doc []byte) (Checker, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(name, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &draft7Checker{schema: compiled}, nil
}

type draft7Checker struct {
	schema *jsonschema.Schema
}

func (c *draft7Checker) Check(value any) []string {
	err := c.schema.Validate(value)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("validation error at %s: %s", loc, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}
