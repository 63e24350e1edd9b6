// =============================================================================
// FIX Log to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the per-file conversion pipeline. It orchestrates the
// whole run for a single log file, from line scanning to workbook output.
//
// CONVERSION PIPELINE:
//   1. Scan the log file line by line (blank lines skipped)
//   2. Decode each line into a structured message
//   3. Collect unparsable lines with their line numbers
//   4. Assemble all decoded messages into one rectangular table
//   5. Write the table to an XLSX workbook
//   6. Write an error log for unparsable lines, if any
//   7. Archive the processed log file
//
// ERROR POLICY:
//   A line without the preamble/body separator fails alone. By default the
//   pipeline skips it, records it with its line number, and keeps every
//   decoded sibling (partial success). With AbortOnError set, the first
//   unparsable line fails the whole file.
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. Within one file the
//   pipeline is strictly sequential: both column discovery and row order
//   are defined in terms of input line order.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/finlogtools/fix-to-xlsx/internal/config"
	"github.com/finlogtools/fix-to-xlsx/internal/fixparser"
	"github.com/finlogtools/fix-to-xlsx/internal/fixtags"
	"github.com/finlogtools/fix-to-xlsx/internal/logging"
	"github.com/finlogtools/fix-to-xlsx/internal/tabulator"
	"github.com/finlogtools/fix-to-xlsx/internal/types"
	"github.com/finlogtools/fix-to-xlsx/internal/xlsxwriter"
	"github.com/finlogtools/fix-to-xlsx/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated workbook.
	// Empty if processing failed or ran dry.
	OutputFile string

	// Success indicates whether the processing was successful.
	// Skipped unparsable lines do not make a run unsuccessful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// LineErrors lists the unparsable lines, in file order.
	LineErrors []LineError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// LineError records one unparsable line.
type LineError struct {
	// Number is the 1-indexed line number in the source file.
	Number int

	// Line is the offending line content.
	Line string

	// Err is the decode error.
	Err error
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LinesRead is the number of non-blank lines scanned.
	LinesRead int

	// MessagesDecoded is the number of lines decoded into messages.
	MessagesDecoded int

	// MalformedLines is the number of lines that could not be decoded.
	MalformedLines int

	// Columns is the number of columns in the assembled table,
	// dynamically discovered unknown-tag columns included.
	Columns int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single FIX log file to XLSX.
type Converter struct {
	// logPath is the path to the input log file.
	logPath string

	// cfg is the application configuration.
	cfg *config.Config

	// dict is the field dictionary for this run.
	dict *fixtags.Dictionary

	// logger is the injected logger.
	logger logging.Logger

	// dryRun decodes and assembles but writes and archives nothing.
	dryRun bool
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - logPath: The path to the input log file.
//   - dict: The field dictionary; nil selects the built-in one.
//   - cfg: The application configuration.
//   - logger: The logger; nil selects the no-op logger.
func New(logPath string, dict *fixtags.Dictionary, cfg *config.Config, logger logging.Logger) *Converter {
	if dict == nil {
		dict = fixtags.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Converter{
		logPath: logPath,
		cfg:     cfg,
		dict:    dict,
		logger:  logger,
	}
}

// SetDryRun toggles dry-run mode.
func (c *Converter) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.logPath,
	}

	c.logger.Info("Processing file: %s", c.logPath)

	// =========================================================================
	// STEP 1+2: SCAN AND DECODE
	// =========================================================================

	messages, lineErrs, stats, err := c.decodeFile()
	result.Stats = stats
	result.LineErrors = lineErrs
	if err != nil {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	for _, le := range lineErrs {
		c.logger.Warn("Skipping line %d: %v", le.Number, le.Err)
	}
	c.logger.Debug("Decoded %d message(s), %d malformed line(s)",
		len(messages), len(lineErrs))

	// =========================================================================
	// STEP 3: ASSEMBLE THE TABLE
	// =========================================================================

	table := tabulator.NewAssembler(c.dict).Assemble(messages)
	result.Stats.Columns = len(table.Columns)
	c.logger.Debug("Assembled table with %d column(s) and %d row(s)",
		len(table.Columns), len(table.Rows))

	if c.dryRun {
		c.logger.Info("Dry run: skipping output for %s", c.logPath)
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 4: WRITE THE WORKBOOK
	// =========================================================================

	outputPath, err := c.writeWorkbook(table)
	if err != nil {
		result.Error = fmt.Errorf("failed to write workbook: %w", err)
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("Wrote output to: %s", outputPath)

	// =========================================================================
	// STEP 5: REPORT UNPARSABLE LINES
	// =========================================================================

	if len(lineErrs) > 0 {
		if logPath, err := c.writeLineErrorLog(lineErrs); err != nil {
			c.logger.Warn("Failed to write line error log: %v", err)
		} else {
			c.logger.Info("Unparsable lines reported in: %s", logPath)
		}
	}

	// =========================================================================
	// STEP 6: ARCHIVE THE INPUT
	// =========================================================================

	if c.cfg.ShouldArchiveInputs() {
		if err := c.archiveInput(); err != nil {
			// Log the error but don't fail the processing.
			c.logger.Warn("Failed to archive input file: %v", err)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// PIPELINE STEPS
// =============================================================================

// decodeFile scans the log file and decodes every non-blank line.
//
// RETURNS:
//   - The decoded messages, in input line order.
//   - The unparsable lines with their line numbers.
//   - Scan statistics.
//   - A fatal error: a read failure, or the first unparsable line when
//     AbortOnError is set.
func (c *Converter) decodeFile() ([]*types.Message, []LineError, ProcessingStats, error) {
	var stats ProcessingStats

	scanner, err := OpenLineScanner(c.logPath)
	if err != nil {
		return nil, nil, stats, err
	}
	defer scanner.Close()

	decoder := fixparser.NewDecoder(c.dict)

	var messages []*types.Message
	var lineErrs []LineError

	for scanner.Next() {
		stats.LinesRead++

		msg, err := decoder.Decode(scanner.Line())
		if err != nil {
			stats.MalformedLines++
			le := LineError{Number: scanner.Number(), Line: scanner.Line(), Err: err}
			if c.cfg.AbortOnError {
				return nil, append(lineErrs, le), stats,
					fmt.Errorf("line %d: %w", le.Number, le.Err)
			}
			lineErrs = append(lineErrs, le)
			continue
		}

		msg.LineNumber = scanner.Number()
		messages = append(messages, msg)
		stats.MessagesDecoded++
	}

	if err := scanner.Err(); err != nil {
		return nil, lineErrs, stats, err
	}

	return messages, lineErrs, stats, nil
}

// writeWorkbook renders the table into the output directory.
func (c *Converter) writeWorkbook(table *types.Table) (string, error) {
	base := filepath.Base(c.logPath)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	fileName := utils.GenerateOutputFileName(c.cfg.OutputNameFormat, map[string]string{
		"original": original,
	})
	outputPath := filepath.Join(c.cfg.OutputDir, fileName)

	opts := xlsxwriter.DefaultOptions()
	opts.SheetName = c.cfg.SheetName

	if err := xlsxwriter.Write(table, outputPath, opts); err != nil {
		return "", err
	}

	return outputPath, nil
}

// writeLineErrorLog reports the unparsable lines of this file into the
// output directory.
func (c *Converter) writeLineErrorLog(lineErrs []LineError) (string, error) {
	entries := make([]utils.ErrorLogEntry, len(lineErrs))
	for i, le := range lineErrs {
		entries[i] = utils.ErrorLogEntry{
			Timestamp:    time.Now(),
			FileName:     filepath.Base(c.logPath),
			ErrorType:    "MalformedLine",
			ErrorMessage: le.Err.Error(),
			LineNumber:   le.Number,
			LineContent:  le.Line,
		}
	}
	return utils.WriteErrorLog(entries, c.cfg.OutputDir)
}

// archiveInput moves the processed log file to the input archive.
func (c *Converter) archiveInput() error {
	fm := utils.NewFileManager(c.cfg.InputDir, c.cfg.OutputDir, c.cfg.InputArchiveDir)
	archivePath, err := fm.ArchiveInputFile(c.logPath)
	if err != nil {
		return err
	}
	c.logger.Debug("Archived input to: %s", archivePath)
	return nil
}
