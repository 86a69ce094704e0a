package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/parser"
	"github.com/planlint/planlint/pkg/schema"
)

const testIndex = `{
	"schemaVersion": "1.0",
	"schemas": {
		"story": { "$ref": "story.json" },
		"task": { "$ref": "task.json" }
	},
	"documentTypes": [
		{
			"type": "story",
			"name": "User Story",
			"description": "A user-facing unit of work",
			"category": "design",
			"schema": "story.json"
		},
		{
			"type": "task",
			"name": "Task",
			"description": "A unit of technical work",
			"category": "development",
			"schema": "task.json"
		}
	]
}`

const storySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["planlint-type", "id"],
	"structuralRequirements": {
		"title": { "required": true, "format": "Story: {name}" },
		"sections": { "required": ["Acceptance Criteria"] },
		"abstract": { "required": true }
	}
}`

const taskSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object"
}`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, schema.IndexFile), []byte(testIndex), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.json"), []byte(storySchema), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "task.json"), []byte(taskSchema), 0o644))

	loader := schema.NewLoader(dir, nil, nil)
	require.NoError(t, loader.Load())
	return New(loader, nil, Config{})
}

func parseDoc(content, path string) *core.Document {
	return parser.New().Parse(content, path)
}

func rules(errs []core.ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Rule)
	}
	return out
}

func TestMissingRequiredStructureShortCircuits(t *testing.T) {
	v := newTestValidator(t)

	// Invalid ID and broken references too, but the structure error must
	// be the only finding.
	doc := parseDoc("= Title\n:id: Bad_ID\n\nxref:story:nope[]\n", "a.adoc")
	result := v.Validate(doc)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "require-structure", result.Errors[0].Rule)
	assert.Equal(t, core.KindStructure, result.Errors[0].Kind)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.DocumentType)
	assert.Empty(t, result.DocumentID)
}

func TestUnknownTypeStillRunsIDAndReferenceChecks(t *testing.T) {
	v := newTestValidator(t)

	doc := parseDoc(`= Title
:planlint-type: saga
:id: Bad_ID
:schema-version: 1.0

== Body

xref:fake-kind:missing[]
`, "a.adoc")
	result := v.Validate(doc)
	v.ResolveReferences()

	assert.False(t, result.Valid)
	got := rules(result.Errors)
	assert.Contains(t, got, "valid-document-type")
	assert.Contains(t, got, "id-format")
	assert.Contains(t, got, "reference-integrity")
	// Type-dependent checks must not have run.
	assert.NotContains(t, got, "required-sections")
	assert.NotContains(t, got, "required-abstract")
}

func TestKnownTypeAccumulatesFindings(t *testing.T) {
	v := newTestValidator(t)

	doc := parseDoc(`= Some Title
:planlint-type: story
:id: login-flow
:schema-version: 1.0

== Unrelated Section

Body text.
`, "story.adoc")
	result := v.Validate(doc)

	assert.False(t, result.Valid)
	got := rules(result.Errors)
	assert.Contains(t, got, "required-sections")
	assert.Contains(t, got, "required-abstract")

	// Title format hint carries a placeholder, so it is advisory only.
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "title-format", result.Warnings[0].Rule)
	assert.Equal(t, core.SeverityWarning, result.Warnings[0].Severity)
}

func TestValidStoryPasses(t *testing.T) {
	v := newTestValidator(t)

	doc := parseDoc(`= Story: Login
:planlint-type: story
:id: login-flow
:schema-version: 1.0

[abstract]
A user can log in.

== Acceptance Criteria

* [ ] login works
`, "story.adoc")
	result := v.Validate(doc)
	v.ResolveReferences()
	v.CheckDuplicateIDs()

	assert.True(t, result.Valid, "errors: %+v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "story", result.DocumentType)
	assert.Equal(t, "login-flow", result.DocumentID)

	// The placeholder hint stays advisory even for a conforming title.
	assert.Equal(t, []string{"title-format"}, rules(result.Warnings))
}

func TestTitleFormatHintWarnsRegardlessOfTitle(t *testing.T) {
	v := newTestValidator(t)

	for _, title := range []string{"Story: Login", "Some Other Title"} {
		doc := parseDoc("= "+title+`
:planlint-type: story
:id: login-flow
:schema-version: 1.0

[abstract]
A user can log in.

== Acceptance Criteria

* [ ] login works
`, "story.adoc")
		result := v.Validate(doc)

		assert.Contains(t, rules(result.Warnings), "title-format", "title %q", title)
	}
}

func TestWarningsNeverAffectValidity(t *testing.T) {
	v := New(newTestValidator(t).schemas, nil, Config{MaxTitleLength: 5})

	doc := parseDoc(`= A Very Long Task Title
:planlint-type: task
:id: some-task
:schema-version: 1.0
`, "task.adoc")
	result := v.Validate(doc)

	assert.True(t, result.Valid)
	assert.Contains(t, rules(result.Warnings), "max-title-length")
}

func TestExternalReferenceAlwaysWarns(t *testing.T) {
	v := newTestValidator(t)

	doc := parseDoc(`= T
:planlint-type: task
:id: my-task
:schema-version: 1.0

== Links

xref:github.com/acme/platform#story:nowhere@2.0[]
`, "task.adoc")
	result := v.Validate(doc)
	v.ResolveReferences()

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "external-reference", result.Warnings[0].Rule)
	assert.Equal(t, core.KindReference, result.Warnings[0].Kind)
}

func TestForwardReferenceResolvesAfterBarrier(t *testing.T) {
	v := newTestValidator(t)

	docA := parseDoc(`= A
:planlint-type: task
:id: task-a
:schema-version: 1.0

== Links

xref:story:checkout[]
`, "a.adoc")
	docB := parseDoc(`= Story: Checkout
:planlint-type: story
:id: checkout
:schema-version: 1.0

[abstract]
Checkout flow.

== Acceptance Criteria

* [ ] works
`, "b.adoc")

	// A is validated before B exists in the index.
	resultA := v.Validate(docA)
	v.Validate(docB)
	v.ResolveReferences()

	assert.True(t, resultA.Valid, "errors: %+v", resultA.Errors)
	assert.NotContains(t, rules(resultA.Errors), "reference-integrity")
}

func TestBrokenInternalReference(t *testing.T) {
	v := newTestValidator(t)

	doc := parseDoc(`= A
:planlint-type: task
:id: task-a
:schema-version: 1.0

== Links

xref:story:ghost[]
`, "a.adoc")
	result := v.Validate(doc)
	v.ResolveReferences()

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "reference-integrity", result.Errors[0].Rule)
	assert.Contains(t, result.Errors[0].Message, "story:ghost")
	require.NotNil(t, result.Errors[0].Location)
	assert.Equal(t, 8, result.Errors[0].Location.Line)
}

func TestDuplicateIDsFlagBothFiles(t *testing.T) {
	v := newTestValidator(t)

	content := `= Story: Login
:planlint-type: story
:id: login-flow
:schema-version: 1.0

[abstract]
Login.

== Acceptance Criteria

ok
`
	resultA := v.Validate(parseDoc(content, "a.adoc"))
	resultB := v.Validate(parseDoc(content, "b.adoc"))
	v.CheckDuplicateIDs()

	for result, other := range map[*core.ValidationResult]string{resultA: "b.adoc", resultB: "a.adoc"} {
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1, "path %s", result.Path)
		e := result.Errors[0]
		assert.Equal(t, core.KindIDConflict, e.Kind)
		assert.Equal(t, "unique-ids", e.Rule)
		assert.Contains(t, e.Message, "login-flow")
		assert.Contains(t, e.Message, other)
	}
}

func TestDocumentIndexRecordsAllOccurrences(t *testing.T) {
	idx := NewDocumentIndex()
	idx.Insert(Occurrence{Type: "story", ID: "x", Path: "a.adoc"})
	idx.Insert(Occurrence{Type: "story", ID: "x", Path: "b.adoc"})
	idx.Insert(Occurrence{Type: "task", ID: "y", Path: "c.adoc"})

	// Resolution sees the newest writer.
	occ, ok := idx.Resolve("story", "x")
	require.True(t, ok)
	assert.Equal(t, "b.adoc", occ.Path)

	// The duplicate pass sees every writer.
	byID := idx.ByID()
	assert.Len(t, byID["x"], 2)
	assert.Len(t, byID["y"], 1)
	assert.Equal(t, 3, idx.Len())

	_, ok = idx.Resolve("story", "missing")
	assert.False(t, ok)
}
