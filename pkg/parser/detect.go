package parser

import (
	"path/filepath"
	"strings"
)

// markupExtensions is the fixed whitelist used by file discovery.
var markupExtensions = map[string]bool{
	".adoc":     true,
	".asciidoc": true,
	".asc":      true,
}

// IsMarkupFile reports whether path has a recognized markup extension.
// The check is advisory: the parser itself accepts any text.
func IsMarkupFile(path string) bool {
	return markupExtensions[strings.ToLower(filepath.Ext(path))]
}

// LooksLikeMarkup scores the first 20 lines of content for markup
// indicators. Headings are strong signals; attributes, comments and
// cross-reference tokens are weak ones.
func LooksLikeMarkup(content string) bool {
	lines := strings.Split(content, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}

	score := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "="):
			score += 2
		case strings.HasPrefix(trimmed, ":") && strings.HasSuffix(trimmed, ":"):
			score++
		case strings.HasPrefix(trimmed, "//"):
			score++
		case strings.Contains(trimmed, "xref:") || strings.Contains(trimmed, "<<"):
			score++
		}
	}

	return score >= 2
}
