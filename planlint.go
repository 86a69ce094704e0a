package planlint

import (
	"context"
	"log/slog"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/linter"
	"github.com/planlint/planlint/pkg/schema"
)

// Version exposes the version of the library.
const Version = "0.3.0"

// --- Types ---

// Document is a public alias for the parsed document model.
type Document = core.Document

// ValidationResult is a public alias for a single file's lint outcome.
type ValidationResult = core.ValidationResult

// ValidationError is a public alias for a single finding.
type ValidationError = core.ValidationError

// Config is a public alias for the linter configuration.
type Config = linter.Config

// --- Configuration ---

// Option defines a functional option for configuring the linter.
type Option = linter.Option

// WithConfig injects a configuration, bypassing config file discovery.
func WithConfig(cfg *Config) Option {
	return linter.WithConfig(cfg)
}

// WithConfigPath loads configuration from an explicit file.
func WithConfigPath(path string) Option {
	return linter.WithConfigPath(path)
}

// WithSchemaPath overrides the schema directory.
func WithSchemaPath(path string) Option {
	return linter.WithSchemaPath(path)
}

// WithEngine injects a custom schema validation engine.
func WithEngine(engine schema.Engine) Option {
	return linter.WithEngine(engine)
}

// WithLogger sets the logger for the linter.
func WithLogger(logger *slog.Logger) Option {
	return linter.WithLogger(logger)
}

// WithWorkers sets the number of parallel validation workers.
func WithWorkers(n int) Option {
	return linter.WithWorkers(n)
}

// --- Factory ---

// New creates a new Linter.
func New(opts ...Option) (*linter.Linter, error) {
	return linter.New(opts...)
}

// --- Operations ---

// Lint discovers and validates the documents matching the patterns in
// one batch, with default options plus the given ones.
func Lint(ctx context.Context, patterns []string, opts ...Option) ([]*ValidationResult, error) {
	l, err := linter.New(opts...)
	if err != nil {
		return nil, err
	}
	return l.LintFiles(ctx, patterns)
}
