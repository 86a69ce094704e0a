// Package linter is the composition root: it wires the parser, schema
// registry and validator into the two-phase batch pipeline and exposes
// the operations the CLI is built on.
package linter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/parser"
	"github.com/planlint/planlint/pkg/schema"
	"github.com/planlint/planlint/pkg/validator"
)

// Linter validates batches of planning documents against the schema
// registry. Create it with New; it is safe for concurrent use once built.
type Linter struct {
	config  Config
	schemas *schema.Loader
	parser  *parser.DocumentParser
	logger  *slog.Logger
	workers int

	mu          sync.Mutex
	lastIndexed int
}

// New builds a Linter: loads configuration (unless injected), then loads
// and compiles the schema registry. A missing schema index is fatal.
func New(opts ...Option) (*Linter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg Config
	if o.config != nil {
		cfg = *o.config
	} else {
		loaded, err := LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.schemaPath != "" {
		cfg.SchemaPath = o.schemaPath
	}
	cfg = cfg.ResolvePaths("")

	schemas := schema.NewLoader(cfg.SchemaPath, o.engine, logger)
	if err := schemas.Load(); err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}

	return &Linter{
		config:  cfg,
		schemas: schemas,
		parser:  parser.New(),
		logger:  logger,
		workers: o.workers,
	}, nil
}

// Config returns the resolved configuration.
func (l *Linter) Config() Config {
	return l.config
}

// DocumentTypes returns the registry's type definitions.
func (l *Linter) DocumentTypes() []schema.DocumentTypeDefinition {
	return l.schemas.DocumentTypes()
}

// LintFiles discovers files matching the patterns and validates them as
// one batch. Phase one parses and validates files on parallel workers,
// sharing a single document index; after all workers have joined, phase
// two resolves internal references and detects duplicate IDs across the
// whole batch. One file's failure never aborts the batch: a parse
// failure degrades to a single-error result for that file.
func (l *Linter) LintFiles(ctx context.Context, patterns []string) ([]*core.ValidationResult, error) {
	files, err := l.Discover(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	l.logger.Debug("validating batch", "files", len(files), "workers", l.workers)

	v := validator.New(l.schemas, validator.NewDocumentIndex(), l.validatorConfig())

	results := make([]*core.ValidationResult, len(files))
	sem := make(chan struct{}, l.workers)
	var wg sync.WaitGroup

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = l.lintOne(v, path)
		}(i, path)
	}

	// Phase barrier: the cross-document passes must not start until
	// every worker has finished inserting into the shared index.
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.config.Rules.ValidateReferences {
		v.ResolveReferences()
	}
	if l.config.Rules.CheckIDUniqueness {
		v.CheckDuplicateIDs()
	}

	l.mu.Lock()
	l.lastIndexed = v.Index().Len()
	l.mu.Unlock()

	return results, nil
}

func (l *Linter) lintOne(v *validator.Validator, path string) *core.ValidationResult {
	doc, err := l.parser.ParseFile(path)
	if err != nil {
		l.logger.Debug("parse failed", "path", path, "error", err)
		return parseFailureResult(path, err)
	}
	return v.Validate(doc)
}

// LintFile validates a single file as a batch of one, running both
// pipeline phases so reference and duplicate findings still appear.
func (l *Linter) LintFile(path string) *core.ValidationResult {
	v := validator.New(l.schemas, validator.NewDocumentIndex(), l.validatorConfig())

	result := l.lintOne(v, path)
	if l.config.Rules.ValidateReferences {
		v.ResolveReferences()
	}
	if l.config.Rules.CheckIDUniqueness {
		v.CheckDuplicateIDs()
	}
	return result
}

func (l *Linter) validatorConfig() validator.Config {
	return validator.Config{
		MaxTitleLength: l.config.Rules.MaxTitleLength,
		SkipIDFormat:   !l.config.Rules.RequireID,
		SkipStructure:  !l.config.Rules.EnforceStructure,
	}
}

func parseFailureResult(path string, err error) *core.ValidationResult {
	result := &core.ValidationResult{Path: path, Valid: true}
	result.AddError(core.ValidationError{
		Kind:    core.KindFormat,
		Message: fmt.Sprintf("Failed to parse file: %v", err),
		Rule:    "file-parsing",
	})
	return result
}
