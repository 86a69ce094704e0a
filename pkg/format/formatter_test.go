package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/schema"
)

func sampleResults() []*core.ValidationResult {
	return []*core.ValidationResult{
		{
			Path:         "good.adoc",
			DocumentType: "story",
			DocumentID:   "login-flow",
			Valid:        true,
		},
		{
			Path:  "bad.adoc",
			Valid: false,
			Errors: []core.ValidationError{
				{
					Kind:       core.KindStructure,
					Severity:   core.SeverityError,
					Message:    "Document missing required attributes",
					Location:   &core.Location{Line: 1},
					Rule:       "require-structure",
					Suggestion: "Add the required attributes",
				},
			},
			Warnings: []core.ValidationError{
				{
					Kind:     core.KindReference,
					Severity: core.SeverityWarning,
					Message:  "External reference cannot be validated: story:x",
					Rule:     "external-reference",
				},
			},
		},
	}
}

func TestText(t *testing.T) {
	f := &Formatter{ShowSuggestions: true}
	out := f.Text(sampleResults(), false)

	for _, want := range []string{
		"✓", "✗",
		"good.adoc", "bad.adoc",
		"(story:login-flow)",
		"Document missing required attributes",
		"(line 1)",
		"[require-structure]",
		"Suggestion: Add the required attributes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "\x1b[") {
		t.Error("color disabled but output contains ANSI escapes")
	}
}

func TestTextColor(t *testing.T) {
	f := &Formatter{Color: true}
	out := f.Text(sampleResults(), false)
	if !strings.Contains(out, "\x1b[31m") {
		t.Error("color enabled but no ANSI escapes in output")
	}
}

func TestTextVerboseShowsWarningsOnFailingFiles(t *testing.T) {
	f := &Formatter{}
	terse := f.Text(sampleResults(), false)
	if strings.Contains(terse, "External reference") {
		t.Error("warnings shown for failing file without verbose")
	}

	verbose := f.Text(sampleResults(), true)
	if !strings.Contains(verbose, "External reference") {
		t.Error("verbose output misses warnings")
	}
}

func TestJSONRoundTrips(t *testing.T) {
	f := &Formatter{}
	out, err := f.JSON(sampleResults())
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded []core.ValidationResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Path != "good.adoc" || !decoded[0].Valid {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded[1].Errors[0].Rule != "require-structure" {
		t.Errorf("decoded error = %+v", decoded[1].Errors[0])
	}
}

func TestJUnit(t *testing.T) {
	f := &Formatter{}
	out, err := f.JUnit(sampleResults())
	if err != nil {
		t.Fatalf("JUnit() error = %v", err)
	}

	for _, want := range []string{
		`tests="2"`,
		`failures="1"`,
		`name="good.adoc"`,
		`name="bad.adoc"`,
		`type="ValidationError"`,
		"<![CDATA[",
		"Document missing required attributes (line 1) [require-structure]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("junit output missing %q:\n%s", want, out)
		}
	}
}

func TestJUnitNameSanitization(t *testing.T) {
	if got := junitName("docs/plans/login flow.adoc"); got != "docs_plans_login_flow.adoc" {
		t.Errorf("junitName() = %q", got)
	}
}

func TestSummaryAndCollect(t *testing.T) {
	stats := Collect(sampleResults())

	if stats.TotalFiles != 2 || stats.ValidFiles != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalErrors != 1 || stats.TotalWarnings != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByKind[core.KindStructure] != 1 || stats.ByKind[core.KindReference] != 1 {
		t.Errorf("ByKind = %+v", stats.ByKind)
	}
	if stats.ByRule["require-structure"] != 1 {
		t.Errorf("ByRule = %+v", stats.ByRule)
	}
	if stats.SuccessRate() != 50 {
		t.Errorf("SuccessRate() = %v", stats.SuccessRate())
	}

	out := (&Formatter{}).Summary(sampleResults())
	for _, want := range []string{"Files processed: 2", "Valid files: 1", "Success rate: 50.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSuccessRateEmptyRun(t *testing.T) {
	if got := (SummaryStats{}).SuccessRate(); got != 0 {
		t.Errorf("SuccessRate() = %v, want 0", got)
	}
}

func TestDocumentTypes(t *testing.T) {
	types := []schema.DocumentTypeDefinition{
		{Type: "story", Name: "User Story", Description: "A unit of work", Category: "design"},
		{Type: "retro", Name: "Retrospective", Description: "What we learned", Category: "release"},
	}

	out := (&Formatter{}).DocumentTypes(types)
	for _, want := range []string{"DESIGN", "RELEASE", "story", "User Story", "retro", "What we learned"} {
		if !strings.Contains(out, want) {
			t.Errorf("type listing missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DEVELOPMENT") {
		t.Error("empty category rendered")
	}
}

func TestParseOutput(t *testing.T) {
	for _, name := range []string{"text", "json", "junit"} {
		if _, err := ParseOutput(name); err != nil {
			t.Errorf("ParseOutput(%q) error = %v", name, err)
		}
	}
	if _, err := ParseOutput("xml"); err == nil {
		t.Error("ParseOutput(xml): want error")
	}
}
