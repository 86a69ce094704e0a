// Package parser converts raw planning-document markup into the core
// document model. Only the subset of the markup needed to recover title,
// header attributes and sections is understood; everything else is kept
// verbatim as section content.
package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/planlint/planlint/pkg/core"
)

// DocumentParser parses markup files with pre-compiled patterns.
type DocumentParser struct {
	title     *regexp.Regexp
	heading   *regexp.Regexp
	attribute *regexp.Regexp
}

// New creates a DocumentParser.
func New() *DocumentParser {
	return &DocumentParser{
		// Document title: = Title
		title: regexp.MustCompile(`^=\s+(.+)$`),
		// Section headings: == Section, === Subsection, etc.
		heading: regexp.MustCompile(`^(=+)\s+(.+)$`),
		// Header attributes: :key: value
		attribute: regexp.MustCompile(`^:([^:]+):\s*(.*)$`),
	}
}

// ParseFile reads and parses the file at path.
func (p *DocumentParser) ParseFile(path string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return p.Parse(string(data), path), nil
}

// Parse runs a single forward scan over content. The scan is in "header"
// mode until the first heading line; title and attributes are only
// recognized there. Blank lines never terminate anything on their own.
func (p *DocumentParser) Parse(content, path string) *core.Document {
	doc := &core.Document{
		Path:       path,
		Attributes: make(core.Attributes),
		Content:    content,
	}

	var current *core.Section
	inHeader := true

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if strings.TrimSpace(line) == "" {
			continue
		}

		// Title capture is gated on "not yet captured" so a later
		// matching line never replaces it.
		if inHeader && doc.Title == "" {
			if m := p.title.FindStringSubmatch(line); m != nil {
				doc.Title = strings.TrimSpace(m[1])
				continue
			}
		}

		// Attributes may appear before or after the title line, but
		// never after the first heading.
		if inHeader {
			if m := p.attribute.FindStringSubmatch(line); m != nil {
				key := strings.TrimSpace(m[1])
				doc.Attributes[key] = strings.TrimSpace(m[2])
				continue
			}
		}

		if m := p.heading.FindStringSubmatch(line); m != nil {
			inHeader = false
			if current != nil {
				doc.Sections = append(doc.Sections, *current)
			}
			current = &core.Section{
				Level: len(m[1]),
				Title: strings.TrimSpace(m[2]),
				Line:  lineNo,
			}
			continue
		}

		if !inHeader {
			if current == nil {
				// Body text before any heading gets a synthetic section.
				current = &core.Section{
					Level:   0,
					Title:   "Content",
					Content: line,
					Line:    lineNo,
				}
				continue
			}
			if current.Content != "" {
				current.Content += "\n"
			}
			current.Content += line
		}
	}

	if current != nil {
		doc.Sections = append(doc.Sections, *current)
	}

	return doc
}
