package linter

import (
	"log/slog"

	"github.com/planlint/planlint/pkg/schema"
)

// options holds the internal configuration for the Linter.
type options struct {
	config     *Config
	configPath string
	schemaPath string
	engine     schema.Engine
	logger     *slog.Logger
	workers    int
}

// Option defines a functional option for configuring the Linter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		workers: 4,
	}
}

// WithConfig injects a fully built configuration, skipping file discovery.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigPath loads configuration from an explicit file.
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithSchemaPath overrides the schema directory from the config file.
func WithSchemaPath(path string) Option {
	return func(o *options) {
		o.schemaPath = path
	}
}

// WithEngine injects a custom schema engine (e.g. a mock).
func WithEngine(engine schema.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithLogger sets the logger for the linter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWorkers sets the number of parallel validation workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}
