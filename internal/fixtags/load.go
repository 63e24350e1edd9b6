// =============================================================================
// FIX Log to XLSX Converter - Dictionary File Loading
// =============================================================================
//
// This file loads field dictionary overrides from external files, so the
// recognized tag set and column order can change without a rebuild. Two
// formats are supported:
//
//   YAML: an ordered list of entries.
//     - tag: "35"
//       name: "35 MsgType"
//     - tag: "448"
//       name: "448 PartyID"
//       repeating: true
//
//   XLSX: the first sheet, one entry per row starting at row 2.
//     | Column A | Column B      | Column C  |
//     |----------|---------------|-----------|
//     | Tag      | Column Name   | Repeating |
//     | 35       | 35 MsgType    |           |
//     | 448      | 448 PartyID   | yes       |
//
// Both forms preserve declaration order, which defines the output column
// order exactly as the built-in dictionary does.
//
// =============================================================================

package fixtags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a dictionary file, dispatching on the file extension.
//
// PARAMETERS:
//   - path: Path to a .yaml, .yml, or .xlsx dictionary file.
//
// RETURNS:
//   - The validated dictionary.
//   - An error if the file cannot be read, parsed, or validated.
func Load(path string) (*Dictionary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dictionary file format: %s", path)
	}
}

// LoadYAML reads a dictionary from a YAML file.
func LoadYAML(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}

	var fields []Field
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file: %w", err)
	}

	dict, err := New(fields)
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary %s: %w", path, err)
	}

	return dict, nil
}

// LoadXLSX reads a dictionary from an XLSX file.
//
// The first sheet is used. Row 1 is treated as a header row and skipped;
// data rows list tag code in column A, column name in column B, and an
// optional repeating marker in column C. Rows with an empty tag cell are
// skipped.
func LoadXLSX(path string) (*Dictionary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("dictionary file has no sheets: %s", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var fields []Field
	for i, row := range rows {
		// Skip the header row.
		if i == 0 {
			continue
		}

		getCell := func(index int) string {
			if index < len(row) {
				return strings.TrimSpace(row[index])
			}
			return ""
		}

		tag := getCell(0)
		if tag == "" {
			continue
		}

		fields = append(fields, Field{
			Tag:       tag,
			Name:      getCell(1),
			Repeating: parseRepeating(getCell(2)),
		})
	}

	dict, err := New(fields)
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary %s: %w", path, err)
	}

	return dict, nil
}

// parseRepeating normalizes the repeating marker cell to a boolean.
func parseRepeating(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1", "repeating", "r":
		return true
	default:
		return false
	}
}
