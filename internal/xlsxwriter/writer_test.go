package xlsxwriter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finlogtools/fix-to-xlsx/internal/fixparser"
	"github.com/finlogtools/fix-to-xlsx/internal/fixtags"
	"github.com/finlogtools/fix-to-xlsx/internal/tabulator"
	"github.com/finlogtools/fix-to-xlsx/internal/types"
)

// sheetCells reopens a workbook and returns its rows as strings.
func sheetCells(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteHeaderAndRows(t *testing.T) {
	table := &types.Table{
		Columns: []string{"TID", "Order Type", "55 Symbol"},
		Rows: []types.Row{
			{
				"TID":        types.Cell{Value: "s(TID=T1)"},
				"Order Type": types.Cell{Value: "NewOrder"},
				"55 Symbol":  types.Cell{Value: "AAPL"},
			},
			{
				"TID":        types.Cell{Value: "s(TID=T2)"},
				"Order Type": types.Cell{Value: "Cancel"},
				"55 Symbol":  types.Cell{},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(table, path, DefaultOptions()))

	rows := sheetCells(t, path, "Sheet1")
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"TID", "Order Type", "55 Symbol"}, rows[0])
	assert.Equal(t, []string{"s(TID=T1)", "NewOrder", "AAPL"}, rows[1])
	// The empty symbol cell renders as empty, not as a missing column.
	assert.Equal(t, "s(TID=T2)", rows[2][0])
	assert.Equal(t, "Cancel", rows[2][1])
}

func TestWriteSequenceCellsJoined(t *testing.T) {
	table := &types.Table{
		Columns: []string{"448 PartyID"},
		Rows: []types.Row{
			{"448 PartyID": types.Cell{List: []string{"A", "C"}}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(table, path, DefaultOptions()))

	rows := sheetCells(t, path, "Sheet1")
	assert.Equal(t, "A, C", rows[1][0])
}

func TestWriteCustomSheetName(t *testing.T) {
	table := &types.Table{Columns: []string{"TID"}}

	opts := DefaultOptions()
	opts.SheetName = "Fills"

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(table, path, opts))

	rows := sheetCells(t, path, "Fills")
	require.Len(t, rows, 1)
	assert.Equal(t, "TID", rows[0][0])
}

func TestWriteColumnWidths(t *testing.T) {
	table := &types.Table{
		Columns: []string{"X"},
		Rows: []types.Row{
			{"X": types.Cell{Value: "a value much longer than the header"}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(table, path, DefaultOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth("Sheet1", "A")
	require.NoError(t, err)
	assert.InDelta(t, float64(len("a value much longer than the header")+2), width, 0.5)
}

// =============================================================================
// Round-Trip Tests
// =============================================================================

// Scalar values must survive decode -> assemble -> write -> reopen exactly,
// string for string, with no type coercion along the way.
func TestWriteRoundTripScalars(t *testing.T) {
	lines := []string{
		"Session(TID=XYZ123) | NewOrder]: 8=FIX.4.4|35=D|55=AAPL|44=0187.2500|9999=opaque",
		"Session(TID=AB-9) | Fill]: 35=8|31=99.50|32=00100",
	}

	d := fixparser.NewDecoder(nil)
	var msgs []*types.Message
	for _, line := range lines {
		msg, err := d.Decode(line)
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}

	table := tabulator.NewAssembler(nil).Assemble(msgs)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(table, path, DefaultOptions()))

	rows := sheetCells(t, path, "Sheet1")
	require.GreaterOrEqual(t, len(rows), 3)

	// Build a column name -> index lookup from the written header.
	colIndex := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIndex[name] = i
	}

	cell := func(row int, col string) string {
		idx, ok := colIndex[col]
		require.True(t, ok, "column %s not in header", col)
		if idx >= len(rows[row]) {
			return ""
		}
		return rows[row][idx]
	}

	assert.Equal(t, "Session(TID=XYZ123)", cell(1, fixtags.ColumnTID))
	assert.Equal(t, "NewOrder", cell(1, fixtags.ColumnOrderType))
	assert.Equal(t, "FIX.4.4", cell(1, "8 BeginString"))
	assert.Equal(t, "0187.2500", cell(1, "44 Price"))
	assert.Equal(t, "opaque", cell(1, "Unknown Tag 9999"))

	assert.Equal(t, "Session(TID=AB-9)", cell(2, fixtags.ColumnTID))
	assert.Equal(t, "99.50", cell(2, "31 LastPx"))
	assert.Equal(t, "00100", cell(2, "32 LastQty"))
	// The first row's unknown tag leaves an empty cell in the second row.
	assert.Equal(t, "", cell(2, "Unknown Tag 9999"))
}
