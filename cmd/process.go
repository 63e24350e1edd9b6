// =============================================================================
// FIX Log to XLSX Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts FIX log files to
// XLSX workbooks. It orchestrates the batch: discovery, concurrent per-file
// conversion, and the summary report.
//
// COMMAND USAGE:
//   fix2xlsx process [flags]
//
// FLAGS:
//   --dry-run              : Decode and tabulate without writing output files
//   --single               : Process only a single file (specify with --file)
//   --file                 : Path to a specific file to process
//   --abort-on-error       : Fail a file on its first unparsable line
//   --prune-archive-days   : Remove archived inputs older than N days
//
// PROCESSING PIPELINE:
//   1. Load the configuration and the field dictionary
//   2. Discover log files in the input directory
//   3. For each file (concurrently, bounded by max_concurrency):
//      a. Decode every line into a structured message
//      b. Assemble the rectangular table
//      c. Write the XLSX workbook
//      d. Report unparsable lines, archive the input
//   4. Print and persist the summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/finlogtools/fix-to-xlsx/internal/config"
	"github.com/finlogtools/fix-to-xlsx/internal/converter"
	"github.com/finlogtools/fix-to-xlsx/internal/fixtags"
	"github.com/finlogtools/fix-to-xlsx/internal/logging"
	"github.com/finlogtools/fix-to-xlsx/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun decodes and tabulates without writing output files.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// abortOnError overrides the configured batch error policy.
var abortOnError bool

// pruneArchiveDays removes archived inputs older than this many days.
// Zero disables pruning.
var pruneArchiveDays int

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process FIX log files and convert them to XLSX workbooks",
	Long: `The process command scans the input directory for FIX log files and
converts each into an XLSX workbook: one row per message, one column per tag,
with columns for unknown tags discovered on the fly.

Processing is done concurrently across files. Within a file, lines are
processed strictly in order so that row order and the discovery order of
unknown-tag columns are stable.

On successful processing:
  - The workbook is placed in the output directory
  - Unparsable lines are reported in an error log, by line number
  - The original log file is moved to the input archive

On error:
  - The original log file remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Decode and tabulate without writing output files",
	)

	processCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process (used with --single)",
	)

	processCmd.Flags().BoolVar(
		&abortOnError,
		"abort-on-error",
		false,
		"Fail a file on its first unparsable line instead of skipping it",
	)

	processCmd.Flags().IntVar(
		&pruneArchiveDays,
		"prune-archive-days",
		0,
		"Remove archived inputs older than this many days (0 disables pruning)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess is the main function that orchestrates the batch.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION AND DICTIONARY
	// =========================================================================

	fmt.Println("=== FIX Log to XLSX Converter ===")

	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if abortOnError {
		cfg.AbortOnError = true
	}

	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	logger, err := logging.New(logLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	dict := fixtags.Default()
	if cfg.DictionaryFile != "" {
		dict, err = fixtags.Load(cfg.DictionaryFile)
		if err != nil {
			return fmt.Errorf("failed to load field dictionary: %w", err)
		}
		logger.Info("Loaded field dictionary from %s (%d fields)", cfg.DictionaryFile, dict.Len())
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles(nil)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No log files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// One goroutine per file, bounded by max_concurrency. Results are
	// collected over a buffered channel.

	var wg sync.WaitGroup
	results := make(chan converter.Result, len(inputFiles))
	semaphore := make(chan struct{}, cfg.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			conv := converter.New(path, dict, cfg, logger)
			conv.SetDryRun(dryRun)
			results <- conv.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for result := range results {
		summary.TotalLines += result.Stats.LinesRead
		summary.TotalMessages += result.Stats.MessagesDecoded
		summary.MalformedLines += result.Stats.MalformedLines

		if result.Success {
			summary.SuccessfulFiles++
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:      result.FilePath,
				OutputFile:     result.OutputFile,
				Lines:          result.Stats.LinesRead,
				Messages:       result.Stats.MessagesDecoded,
				MalformedLines: result.Stats.MalformedLines,
				Columns:        result.Stats.Columns,
				ProcessTime:    result.Stats.ProcessingTime,
			})
			if result.OutputFile != "" {
				fmt.Printf("  OK   %s -> %s (%d messages", filepath.Base(result.FilePath),
					filepath.Base(result.OutputFile), result.Stats.MessagesDecoded)
			} else {
				fmt.Printf("  OK   %s (dry run, %d messages", filepath.Base(result.FilePath),
					result.Stats.MessagesDecoded)
			}
			if result.Stats.MalformedLines > 0 {
				fmt.Printf(", %d line(s) skipped", result.Stats.MalformedLines)
			}
			fmt.Println(")")
		} else {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
			})
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// STEP 5: SUMMARY AND HOUSEKEEPING
	// =========================================================================

	summary.EndTime = time.Now()

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Failed:          %d\n", summary.FailedFiles)
	fmt.Printf("Messages:        %d\n", summary.TotalMessages)
	fmt.Printf("Malformed lines: %d\n", summary.MalformedLines)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if !dryRun {
		if path, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
			logger.Warn("Failed to write summary log: %v", err)
		} else {
			logger.Info("Summary written to: %s", path)
		}
	}

	if pruneArchiveDays > 0 {
		maxAge := time.Duration(pruneArchiveDays) * 24 * time.Hour
		removed, err := utils.CleanOldArchives(cfg.InputArchiveDir, maxAge)
		if err != nil {
			logger.Warn("Archive pruning failed: %v", err)
		} else if removed > 0 {
			logger.Info("Pruned %d archived file(s) older than %d day(s)", removed, pruneArchiveDays)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d file(s) failed", summary.FailedFiles)
	}

	return nil
}
