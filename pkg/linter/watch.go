package linter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/parser"
)

const watchDebounce = 250 * time.Millisecond

// WatchFunc receives a fresh batch of results after each re-lint.
type WatchFunc func(results []*core.ValidationResult)

// Watch lints the patterns once, then re-lints the whole batch whenever
// a matching file changes. Events are debounced so a burst of writes
// (editor save, git checkout) triggers a single re-lint. Watch blocks
// until ctx is cancelled or the watcher fails.
func (l *Linter) Watch(ctx context.Context, patterns []string, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	roots := watchRoots(patterns)
	for _, root := range roots {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}
	l.logger.Debug("watching", "roots", roots)

	relint := func(ctx context.Context) error {
		results, err := l.LintFiles(ctx, patterns)
		if err != nil {
			return err
		}
		fn(results)
		return nil
	}
	if err := relint(ctx); err != nil {
		return err
	}

	var mu sync.Mutex
	var timer *time.Timer

	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			lifecycle.Go(ctx, relint, lifecycle.WithErrorHandler(func(err error) {
				l.logger.Error("re-lint failed", "error", err)
			}))
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			// New directories must be added so files created inside
			// them later are still seen.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
					continue
				}
			}
			if !parser.IsMarkupFile(event.Name) {
				continue
			}
			if l.excluded(event.Name) {
				continue
			}
			l.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			schedule()

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			l.logger.Error("watcher error", "error", wErr)
		}
	}
}

// watchRoots extracts the static directory prefix of each glob pattern,
// deduplicated. A pattern with no static prefix watches the cwd.
func watchRoots(patterns []string) []string {
	seen := make(map[string]struct{})
	var roots []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if base == "." || base == "" {
			base = "."
		}
		root := filepath.FromSlash(base)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return roots
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name == ".git" || name == "node_modules" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
