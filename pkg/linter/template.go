package linter

import (
	"fmt"
	"strings"
	"time"

	"github.com/planlint/planlint/pkg/core"
)

// Template renders a skeleton document for a registered type: the title
// (honoring the type's title format when one is declared), the required
// header attributes, an abstract block when the type requires one, and
// an empty level-2 section per required section.
func (l *Linter) Template(docType, id, name string) (string, error) {
	if !l.schemas.IsValidType(docType) {
		return "", fmt.Errorf("%w: %s", core.ErrUnknownDocumentType, docType)
	}

	title := name
	if format := l.schemas.TitleFormat(docType); strings.Contains(format, "{name}") {
		title = strings.ReplaceAll(format, "{name}", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "= %s\n", title)
	fmt.Fprintf(&b, ":%s: %s\n", core.AttrType, docType)
	fmt.Fprintf(&b, ":%s: %s\n", core.AttrID, id)
	b.WriteString(":status: draft\n")
	fmt.Fprintf(&b, ":created: %s\n", time.Now().Format("2006-01-02"))
	b.WriteString(":author: \n")
	fmt.Fprintf(&b, ":%s: 1.0\n", core.AttrSchemaVersion)
	b.WriteString("\n")

	if l.schemas.IsAbstractRequired(docType) {
		b.WriteString("[abstract]\n")
		b.WriteString("One paragraph summary of this document.\n")
		b.WriteString("\n")
	}

	for _, section := range l.schemas.RequiredSections(docType) {
		fmt.Fprintf(&b, "== %s\n", section)
		b.WriteString("\n")
	}

	return b.String(), nil
}
