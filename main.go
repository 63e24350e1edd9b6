// =============================================================================
// FIX Log to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the FIX Log to XLSX Converter CLI
// application. It initializes the Cobra CLI framework and delegates command
// execution to the cmd package.
//
// USAGE:
//   fix2xlsx process       - Process all FIX log files in the input directory
//   fix2xlsx version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/finlogtools/fix-to-xlsx/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
