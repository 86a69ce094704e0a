// Package format renders validation results for humans and machines. It
// consumes the core result types and holds no state of its own.
package format

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/schema"
)

// Output selects a rendering.
type Output string

const (
	OutputText  Output = "text"
	OutputJSON  Output = "json"
	OutputJUnit Output = "junit"
)

// ParseOutput validates a format name from a flag or config value.
func ParseOutput(name string) (Output, error) {
	switch Output(name) {
	case OutputText, OutputJSON, OutputJUnit:
		return Output(name), nil
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
	ansiBold   = "\x1b[1m"
)

// Formatter renders validation results.
type Formatter struct {
	// Color enables ANSI escapes in text output.
	Color bool
	// ShowSuggestions includes per-finding suggestions in text output.
	ShowSuggestions bool
}

// Render dispatches to the renderer for the given output format.
func (f *Formatter) Render(out Output, results []*core.ValidationResult, verbose bool) (string, error) {
	switch out {
	case OutputJSON:
		return f.JSON(results)
	case OutputJUnit:
		return f.JUnit(results)
	default:
		text := f.Text(results, verbose)
		if !verbose {
			text += f.Summary(results)
		}
		return text, nil
	}
}

func (f *Formatter) paint(s, code string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}

// Text renders a human-readable report: one status line per file, with
// findings listed under failing files (and under all files when verbose).
func (f *Formatter) Text(results []*core.ValidationResult, verbose bool) string {
	var b strings.Builder

	for _, r := range results {
		status := f.paint("✓", ansiGreen)
		if !r.Valid {
			status = f.paint("✗", ansiRed)
		}

		docInfo := ""
		if r.DocumentType != "" && r.DocumentID != "" {
			docInfo = f.paint(fmt.Sprintf(" (%s:%s)", r.DocumentType, r.DocumentID), ansiDim)
		}
		fmt.Fprintf(&b, "%s %s%s\n", status, f.paint(r.Path, ansiCyan), docInfo)

		if !r.Valid || verbose {
			for _, e := range r.Errors {
				b.WriteString(f.finding(e, "error"))
			}
			if verbose || len(r.Errors) == 0 {
				for _, w := range r.Warnings {
					b.WriteString(f.finding(w, "warning"))
				}
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (f *Formatter) finding(e core.ValidationError, level string) string {
	icon := f.paint("  •", "")
	switch level {
	case "error":
		icon = f.paint("  ✗", ansiRed)
	case "warning":
		icon = f.paint("  ⚠", ansiYellow)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", icon, e.Message)

	if loc := formatLocation(e.Location); loc != "" {
		b.WriteString(f.paint(" ("+loc+")", ansiDim))
	}
	if e.Rule != "" {
		b.WriteString(f.paint(" ["+e.Rule+"]", ansiDim))
	}
	b.WriteString("\n")

	if f.ShowSuggestions && e.Suggestion != "" {
		b.WriteString(f.paint("    Suggestion: "+e.Suggestion+"\n", ansiDim))
	}

	return b.String()
}

func formatLocation(loc *core.Location) string {
	if loc == nil {
		return ""
	}
	var parts []string
	if loc.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", loc.Line))
	}
	if loc.Column > 0 {
		parts = append(parts, fmt.Sprintf("col %d", loc.Column))
	}
	if loc.Section != "" {
		parts = append(parts, fmt.Sprintf("section %q", loc.Section))
	}
	return strings.Join(parts, ", ")
}

// JSON renders the results verbatim as indented JSON.
func (f *Formatter) JSON(results []*core.ValidationResult) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

type junitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string         `xml:"name,attr"`
	Classname string         `xml:"classname,attr"`
	Failures  []junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Type    string `xml:"type,attr"`
	Message string `xml:",cdata"`
}

// JUnit renders the results as a JUnit XML test suite, one test case per
// file, for CI systems.
func (f *Formatter) JUnit(results []*core.ValidationResult) (string, error) {
	suite := junitTestSuite{
		Name: "planlint",
		Time: "0",
	}

	for _, r := range results {
		tc := junitTestCase{
			Name:      junitName(r.Path),
			Classname: "planlint",
		}
		if !r.Valid {
			suite.Failures++
			for _, e := range r.Errors {
				msg := e.Message
				if e.Location != nil && e.Location.Line > 0 {
					msg += fmt.Sprintf(" (line %d)", e.Location.Line)
				}
				if e.Rule != "" {
					msg += fmt.Sprintf(" [%s]", e.Rule)
				}
				tc.Failures = append(tc.Failures, junitFailure{
					Type:    "ValidationError",
					Message: msg,
				})
			}
		}
		suite.Cases = append(suite.Cases, tc)
	}
	suite.Tests = len(results)

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(data) + "\n", nil
}

func junitName(path string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '_'
	}, path)
}

// Summary renders the aggregate counters block for text output.
func (f *Formatter) Summary(results []*core.ValidationResult) string {
	stats := Collect(results)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", f.paint("Summary:", ansiBold))
	fmt.Fprintf(&b, "Files processed: %d\n", stats.TotalFiles)
	fmt.Fprintf(&b, "Valid files: %s\n", f.paint(fmt.Sprint(stats.ValidFiles), ansiGreen))
	fmt.Fprintf(&b, "Invalid files: %s\n", f.paint(fmt.Sprint(stats.TotalFiles-stats.ValidFiles), ansiRed))
	fmt.Fprintf(&b, "Total errors: %s\n", f.paint(fmt.Sprint(stats.TotalErrors), ansiRed))
	fmt.Fprintf(&b, "Total warnings: %s\n", f.paint(fmt.Sprint(stats.TotalWarnings), ansiYellow))
	fmt.Fprintf(&b, "Success rate: %.1f%%\n", stats.SuccessRate())

	return b.String()
}

// DocumentTypes renders the registry's type definitions grouped by
// lifecycle category.
func (f *Formatter) DocumentTypes(types []schema.DocumentTypeDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", f.paint("Available Document Types:", ansiBold))

	for _, category := range []string{"discovery", "design", "development", "testing", "release"} {
		var inCategory []schema.DocumentTypeDefinition
		for _, dt := range types {
			if dt.Category == category {
				inCategory = append(inCategory, dt)
			}
		}
		if len(inCategory) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s:\n", f.paint(strings.ToUpper(category), ansiCyan+ansiBold))
		for _, dt := range inCategory {
			fmt.Fprintf(&b, "  %-20s %s\n", f.paint(dt.Type, ansiYellow), dt.Name)
			fmt.Fprintf(&b, "    %s\n\n", f.paint(dt.Description, ansiDim))
		}
	}

	return b.String()
}

// SummaryStats aggregates counters across a whole run.
type SummaryStats struct {
	TotalFiles    int
	ValidFiles    int
	TotalErrors   int
	TotalWarnings int
	ByKind        map[core.ErrorKind]int
	ByRule        map[string]int
}

// SuccessRate is the percentage of valid files, 0 for an empty run.
func (s SummaryStats) SuccessRate() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.ValidFiles) / float64(s.TotalFiles) * 100
}

// Collect computes aggregate statistics over validation results, counting
// both errors and warnings per kind and rule.
func Collect(results []*core.ValidationResult) SummaryStats {
	stats := SummaryStats{
		ByKind: make(map[core.ErrorKind]int),
		ByRule: make(map[string]int),
	}

	for _, r := range results {
		stats.TotalFiles++
		if r.Valid {
			stats.ValidFiles++
		}
		stats.TotalErrors += len(r.Errors)
		stats.TotalWarnings += len(r.Warnings)

		for _, findings := range [][]core.ValidationError{r.Errors, r.Warnings} {
			for _, e := range findings {
				stats.ByKind[e.Kind]++
				if e.Rule != "" {
					stats.ByRule[e.Rule]++
				}
			}
		}
	}

	return stats
}
