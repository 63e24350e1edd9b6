package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "Parsed_{original}_{timestamp}.xlsx", cfg.OutputNameFormat)
	assert.Equal(t, "Sheet1", cfg.SheetName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.False(t, cfg.AbortOnError)
	assert.True(t, cfg.ShouldArchiveInputs())
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
input_dir: /data/fix/in
output_dir: /data/fix/out
sheet_name: Fills
log_level: debug
max_concurrency: 8
abort_on_error: true
archive_inputs: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/fix/in", cfg.InputDir)
	assert.Equal(t, "/data/fix/out", cfg.OutputDir)
	assert.Equal(t, "Fills", cfg.SheetName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.True(t, cfg.AbortOnError)
	assert.False(t, cfg.ShouldArchiveInputs())

	// Unset options still receive their defaults.
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "Parsed_{original}_{timestamp}.xlsx", cfg.OutputNameFormat)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := writeConfigFile(t, "log_level: loud\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadNegativeConcurrency(t *testing.T) {
	path := writeConfigFile(t, "max_concurrency: -2\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrency")
}

func TestLoadMissingDictionaryFile(t *testing.T) {
	path := writeConfigFile(t, "dictionary_file: /no/such/tags.yaml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dictionary_file")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "input_dir: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefaultExistingFile(t *testing.T) {
	path := writeConfigFile(t, "sheet_name: Orders\n")

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "Orders", cfg.SheetName)
}
