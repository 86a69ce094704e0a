package linter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/planlint/planlint/pkg/core"
)

// Config is the full linter configuration, loadable from a project
// config file and overridable from the CLI.
type Config struct {
	SchemaPath      string       `yaml:"schemaPath" json:"schemaPath"`
	ExcludePatterns []string     `yaml:"excludePatterns" json:"excludePatterns"`
	Rules           RulesConfig  `yaml:"rules" json:"rules"`
	Output          OutputConfig `yaml:"output" json:"output"`
}

// RulesConfig toggles individual validation rules.
type RulesConfig struct {
	RequireID          bool     `yaml:"requireId" json:"requireId"`
	EnforceStructure   bool     `yaml:"enforceStructure" json:"enforceStructure"`
	ValidateReferences bool     `yaml:"validateReferences" json:"validateReferences"`
	CheckIDUniqueness  bool     `yaml:"checkIdUniqueness" json:"checkIdUniqueness"`
	MaxTitleLength     int      `yaml:"maxTitleLength" json:"maxTitleLength"`
	RequiredAttributes []string `yaml:"requiredAttributes" json:"requiredAttributes"`
}

// OutputConfig holds rendering preferences.
type OutputConfig struct {
	Format          string `yaml:"format" json:"format"`
	Verbose         bool   `yaml:"verbose" json:"verbose"`
	ShowSuggestions bool   `yaml:"showSuggestions" json:"showSuggestions"`
	Color           bool   `yaml:"color" json:"color"`
}

// configFiles is the discovery order when no explicit path is given.
var configFiles = []string{
	".planlint.yaml",
	".planlint.yml",
	".planlintrc.json",
	"planlint.yaml",
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		SchemaPath: "schema",
		ExcludePatterns: []string{
			"node_modules/**",
			"dist/**",
			".git/**",
			"*.tmp.adoc",
		},
		Rules: RulesConfig{
			RequireID:          true,
			EnforceStructure:   true,
			ValidateReferences: true,
			CheckIDUniqueness:  true,
			MaxTitleLength:     100,
			RequiredAttributes: []string{core.AttrType, core.AttrID, core.AttrSchemaVersion},
		},
		Output: OutputConfig{
			Format:          "text",
			ShowSuggestions: true,
			Color:           true,
		},
	}
}

// LoadConfig loads configuration from path, or walks the discovery list
// in the current directory when path is empty. No config file means
// defaults, not an error.
func LoadConfig(path string) (Config, error) {
	if path != "" {
		return loadConfigFile(path)
	}

	if found, ok := FindConfigFile(); ok {
		return loadConfigFile(found)
	}
	return DefaultConfig(), nil
}

// FindConfigFile walks the discovery list in the current directory and
// reports the first config file that exists.
func FindConfigFile() (string, bool) {
	for _, candidate := range configFiles {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		// Sniff the content.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			err = json.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	return cfg, nil
}

// ResolvePaths makes relative paths absolute against base.
func (c Config) ResolvePaths(base string) Config {
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	if c.SchemaPath != "" && !filepath.IsAbs(c.SchemaPath) {
		c.SchemaPath = filepath.Join(base, c.SchemaPath)
	}
	return c
}
