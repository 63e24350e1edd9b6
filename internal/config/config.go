// =============================================================================
// FIX Log to XLSX Converter - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration from a YAML
// file. The configuration covers directory layout, output naming, logging,
// the batch error policy, and an optional field dictionary override.
//
// All settings have working defaults: the tool runs without a configuration
// file at all, processing ./input into ./output with the built-in dictionary.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for FIX log files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated workbooks are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed log files are moved.
	// Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// DICTIONARY SETTINGS
	// =========================================================================

	// DictionaryFile optionally overrides the built-in field dictionary.
	// Supported formats: YAML (.yaml/.yml) and XLSX (.xlsx).
	// Empty means the built-in dictionary is used.
	DictionaryFile string `yaml:"dictionary_file"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output workbook file name.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "Parsed_{original}_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// SheetName is the name of the sheet in the output workbook.
	// Default: "Sheet1"
	SheetName string `yaml:"sheet_name"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file.
	// Empty means logging goes to stderr.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files to process concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// AbortOnError aborts a file as soon as one of its lines has no
	// preamble/body separator. When false (the default), unparsable lines
	// are skipped and reported while the rest of the file is still
	// converted.
	AbortOnError bool `yaml:"abort_on_error"`

	// ArchiveInputs moves processed log files to the input archive after
	// successful processing.
	// Default: true
	ArchiveInputs *bool `yaml:"archive_inputs"`
}

// ShouldArchiveInputs resolves the ArchiveInputs setting with its default.
func (c *Config) ShouldArchiveInputs() bool {
	if c.ArchiveInputs == nil {
		return true
	}
	return *c.ArchiveInputs
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed, or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the configuration file if it exists and falls back to
// the defaults if it does not. Used by commands so the tool works out of the
// box without a config.yaml.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "Parsed_{original}_{timestamp}.xlsx"
	}
	if config.SheetName == "" {
		config.SheetName = "Sheet1"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validate checks the configuration for values the pipeline cannot work with.
func validate(config *Config) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (expected debug, info, warn, or error)", config.LogLevel)
	}

	if config.DictionaryFile != "" {
		if _, err := os.Stat(config.DictionaryFile); err != nil {
			return fmt.Errorf("dictionary_file %s: %w", config.DictionaryFile, err)
		}
	}

	return nil
}
