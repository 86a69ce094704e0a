package linter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "schema", cfg.SchemaPath)
	assert.True(t, cfg.Rules.ValidateReferences)
	assert.True(t, cfg.Rules.CheckIDUniqueness)
	assert.Equal(t, 100, cfg.Rules.MaxTitleLength)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Contains(t, cfg.ExcludePatterns, "node_modules/**")
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planlint.yaml")
	content := `schemaPath: my-schemas
rules:
  checkIdUniqueness: false
  maxTitleLength: 60
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "my-schemas", cfg.SchemaPath)
	assert.False(t, cfg.Rules.CheckIDUniqueness)
	assert.Equal(t, 60, cfg.Rules.MaxTitleLength)
	assert.Equal(t, "json", cfg.Output.Format)
	// Unset keys keep defaults.
	assert.True(t, cfg.Rules.ValidateReferences)
}

func TestLoadConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".planlintrc.json")
	content := `{"schemaPath": "s", "output": {"format": "junit"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "s", cfg.SchemaPath)
	assert.Equal(t, "junit", cfg.Output.Format)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigNoFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, ok := FindConfigFile()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(".planlint.yml", []byte("schemaPath: s\n"), 0o644))
	found, ok := FindConfigFile()
	assert.True(t, ok)
	assert.Equal(t, ".planlint.yml", found)
}

func TestLoadConfigBadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [not, a, map]"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResolvePaths(t *testing.T) {
	cfg := DefaultConfig()
	resolved := cfg.ResolvePaths("/project")
	assert.Equal(t, filepath.Join("/project", "schema"), resolved.SchemaPath)

	cfg.SchemaPath = "/absolute/schemas"
	resolved = cfg.ResolvePaths("/project")
	assert.Equal(t, "/absolute/schemas", resolved.SchemaPath)
}
