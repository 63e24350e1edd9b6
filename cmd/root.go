// =============================================================================
// FIX Log to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fix2xlsx)
//   ├── processCmd (fix2xlsx process)
//   └── versionCmd (fix2xlsx version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Delegating configuration loading to the individual commands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "fix2xlsx",

	Short: "FIX Log to XLSX Converter - Tabulate FIX messages from session logs",

	Long: `FIX Log to XLSX Converter is a CLI tool that extracts pipe-delimited
tag=value FIX messages embedded in session log lines and tabulates them into
an XLSX workbook: one row per message, one column per tag.

Key Features:
  - Built-in FIX tag dictionary with human-readable column names
  - Dynamic columns for tags the dictionary does not know
  - Repeated party tags (448/447/452) folded into aligned sequences
  - Per-line error reporting with partial batch success
  - Concurrent processing of multiple log files
  - Automatic archival of processed inputs

Example Usage:
  fix2xlsx process                     # Process all log files in the input directory
  fix2xlsx process --config ./my.yaml  # Use a custom configuration file
  fix2xlsx process --single --file x.log`,

	// Print the help message when called without a subcommand.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	// --config flag: path to the main configuration file. The file is
	// optional; defaults are used when it does not exist.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: enables debug logging regardless of the configured
	// log level.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
