// Package planlint is the composition root for the planlint library.
//
// It connects the document model and parser (Domain Layer) with the
// schema registry and validation pipeline (Validation Layer).
//
// Philosophy:
//
// Planlint treats a directory of AsciiDoc planning documents as a typed,
// cross-referenced document set. Each document declares its type, ID and
// schema version in header attributes; a JSON Schema registry defines
// what each type must contain. Validation runs over the whole set, so
// references between documents and ID collisions are first-class
// findings, not an afterthought.
//
// Features:
//
//   - **Batch validation**: files are parsed and validated on parallel
//     workers, then cross-document checks run over the shared index.
//   - **Schema registry**: document types, their JSON Schemas and
//     structural requirements load from a single index directory.
//   - **Reference integrity**: xref targets must exist somewhere in the
//     batch; duplicate IDs are reported on every file involved.
//   - **Templates**: skeleton documents generated from a type's
//     structural requirements.
//   - **Watch mode**: re-lints the batch on filesystem changes.
//
// Usage:
//
//	// Lint a document set with functional options
//	results, err := planlint.Lint(ctx, []string{"docs/**/*.adoc"},
//		planlint.WithSchemaPath("./schema"),
//		planlint.WithLogger(logger),
//	)
package planlint
