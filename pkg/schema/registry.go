// Package schema loads the document-type registry and compiles each
// type's schema for attribute validation. The registry is loaded once per
// run and read-only thereafter.
package schema

// Registry is the parsed schema index file.
type Registry struct {
	SchemaVersion string                   `json:"schemaVersion"`
	Schemas       map[string]SchemaRef     `json:"schemas"`
	DocumentTypes []DocumentTypeDefinition `json:"documentTypes"`
}

// SchemaRef points at a schema file from the index.
type SchemaRef struct {
	Ref string `json:"$ref"`
}

// DocumentTypeDefinition describes one document type known to the registry.
type DocumentTypeDefinition struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Schema      string `json:"schema"`
}

// StructuralRequirements are the schema-declared constraints that go
// beyond attribute validation: required/optional sections, abstract
// presence, and a title format hint. Every field defaults to absent.
type StructuralRequirements struct {
	Title    *TitleRequirement    `json:"title,omitempty"`
	Sections *SectionRequirements `json:"sections,omitempty"`
	Abstract *AbstractRequirement `json:"abstract,omitempty"`
}

// TitleRequirement hints at how a document title should look.
type TitleRequirement struct {
	Required    bool   `json:"required,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
}

// SectionRequirements lists the sections a document type expects.
type SectionRequirements struct {
	Required    []string `json:"required,omitempty"`
	Optional    []string `json:"optional,omitempty"`
	Description string   `json:"description,omitempty"`
}

// AbstractRequirement states whether a document type needs an abstract.
type AbstractRequirement struct {
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// CompiledSchema is one document type ready for validation.
type CompiledSchema struct {
	Definition DocumentTypeDefinition
	Checker    Checker
	Structure  StructuralRequirements
}
