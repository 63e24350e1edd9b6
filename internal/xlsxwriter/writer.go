// =============================================================================
// FIX Log to XLSX Converter - XLSX Writer Module
// =============================================================================
//
// This module renders an assembled table into an XLSX workbook. It is the
// only place that knows about display concerns: how sequence cells are
// flattened to a string, how wide the columns should be, and what the sheet
// is called. The core table stays format-agnostic.
//
// OUTPUT LAYOUT:
//   Row 1      : column headers, in table column order
//   Rows 2..n+1: one row per message, in input order
//
// Column widths are sized to the longest cell in each column plus a small
// margin, mirroring what operators expect from the workbook: no truncated
// order IDs, no horizontal scrolling through empty space.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finlogtools/fix-to-xlsx/internal/types"
)

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options controls workbook rendering.
type Options struct {
	// SheetName is the name of the output sheet.
	// Default: "Sheet1"
	SheetName string

	// ListSeparator joins the values of a sequence cell into one cell
	// string.
	// Default: ", "
	ListSeparator string

	// AdjustColumnWidths sizes each column to its longest cell.
	// Default: true
	AdjustColumnWidths bool

	// MaxColumnWidth caps the computed column width.
	// Default: 80
	MaxColumnWidth float64
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		SheetName:          "Sheet1",
		ListSeparator:      ", ",
		AdjustColumnWidths: true,
		MaxColumnWidth:     80,
	}
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write renders a table to an XLSX file.
//
// PARAMETERS:
//   - table: The assembled table.
//   - path: The output file path.
//   - opts: Rendering options; zero-value fields fall back to defaults.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(table *types.Table, path string, opts Options) error {
	applyOptionDefaults(&opts)

	f := excelize.NewFile()
	defer f.Close()

	// excelize creates "Sheet1" by default; rename it if requested.
	if opts.SheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", opts.SheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	// Track the longest rendered value per column for width sizing.
	widths := make([]int, len(table.Columns))

	// Header row.
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
		widths[i] = len(col)
	}
	if err := f.SetSheetRow(opts.SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	// Data rows.
	for rowIndex, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for colIndex, col := range table.Columns {
			rendered := renderCell(row[col], opts.ListSeparator)
			values[colIndex] = rendered
			if len(rendered) > widths[colIndex] {
				widths[colIndex] = len(rendered)
			}
		}

		anchor, err := excelize.CoordinatesToCellName(1, rowIndex+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell reference: %w", err)
		}
		if err := f.SetSheetRow(opts.SheetName, anchor, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowIndex+2, err)
		}
	}

	if opts.AdjustColumnWidths {
		if err := adjustColumnWidths(f, opts.SheetName, widths, opts.MaxColumnWidth); err != nil {
			return fmt.Errorf("failed to adjust column widths: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// renderCell flattens a cell to its workbook string. Sequence cells are
// joined with the list separator; empty cells render as the empty string.
func renderCell(c types.Cell, listSeparator string) string {
	if c.IsList() {
		return strings.Join(c.List, listSeparator)
	}
	return c.Value
}

// adjustColumnWidths sets each column width to its longest content plus a
// two-character margin, capped at maxWidth.
func adjustColumnWidths(f *excelize.File, sheet string, widths []int, maxWidth float64) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		width := float64(w + 2)
		if width > maxWidth {
			width = maxWidth
		}

		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// applyOptionDefaults fills zero-value options.
func applyOptionDefaults(opts *Options) {
	if opts.SheetName == "" {
		opts.SheetName = "Sheet1"
	}
	if opts.ListSeparator == "" {
		opts.ListSeparator = ", "
	}
	if opts.MaxColumnWidth == 0 {
		opts.MaxColumnWidth = 80
	}
}
