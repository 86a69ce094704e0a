package linter

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/planlint/planlint/pkg/parser"
)

// Discover expands glob patterns into the sorted, deduplicated list of
// markup files to lint. Patterns support doublestar globs (**). Literal
// paths pass through the same expansion. Files matching any configured
// exclude pattern are dropped.
func (l *Linter) Discover(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if !parser.IsMarkupFile(match) {
				continue
			}
			if l.excluded(match) {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (l *Linter) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range l.config.ExcludePatterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}
