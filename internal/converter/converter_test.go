package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finlogtools/fix-to-xlsx/internal/config"
	"github.com/finlogtools/fix-to-xlsx/internal/logging"
)

// newTestConfig builds a config pointing at fresh temp directories.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "input_archive")

	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	return cfg
}

// writeLogFile drops a log file into the input directory.
func writeLogFile(t *testing.T, cfg *config.Config, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleLog = `Session(TID=T1) | NewOrder]: 35=D|55=AAPL|44=187.25
this line has no separator at all

Session(TID=T2) | Fill]: 35=8|31=99.50|9999=x
Session(TID=T3) | Cancel]: 35=F
`

// =============================================================================
// Pipeline Tests
// =============================================================================

func TestRunPartialSuccess(t *testing.T) {
	cfg := newTestConfig(t)
	logPath := writeLogFile(t, cfg, "fills.log", sampleLog)

	result := New(logPath, nil, cfg, logging.Nop()).Run()

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Stats.LinesRead)
	assert.Equal(t, 3, result.Stats.MessagesDecoded)
	assert.Equal(t, 1, result.Stats.MalformedLines)

	// The unparsable line is reported by its original line number; the
	// blank line does not shift the numbering.
	require.Len(t, result.LineErrors, 1)
	assert.Equal(t, 2, result.LineErrors[0].Number)
	assert.Contains(t, result.LineErrors[0].Line, "no separator")

	// The workbook exists and carries all three decoded siblings.
	require.NotEmpty(t, result.OutputFile)
	f, err := excelize.OpenFile(result.OutputFile)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(cfg.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + 3 messages

	// The input was archived.
	assert.NoFileExists(t, logPath)
	assert.FileExists(t, filepath.Join(cfg.InputArchiveDir, "fills.log"))
}

func TestRunAbortOnError(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.AbortOnError = true
	logPath := writeLogFile(t, cfg, "fills.log", sampleLog)

	result := New(logPath, nil, cfg, logging.Nop()).Run()

	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "line 2")
	assert.Empty(t, result.OutputFile)

	// Failed files stay in the input directory.
	assert.FileExists(t, logPath)
}

func TestRunDryRun(t *testing.T) {
	cfg := newTestConfig(t)
	logPath := writeLogFile(t, cfg, "fills.log", sampleLog)

	conv := New(logPath, nil, cfg, logging.Nop())
	conv.SetDryRun(true)
	result := conv.Run()

	assert.True(t, result.Success)
	assert.Empty(t, result.OutputFile)
	assert.Equal(t, 3, result.Stats.MessagesDecoded)

	// Nothing written, nothing archived.
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, logPath)
}

func TestRunArchivingDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	archive := false
	cfg.ArchiveInputs = &archive
	logPath := writeLogFile(t, cfg, "fills.log", sampleLog)

	result := New(logPath, nil, cfg, logging.Nop()).Run()

	assert.True(t, result.Success)
	assert.FileExists(t, logPath)
}

func TestRunMissingFile(t *testing.T) {
	cfg := newTestConfig(t)

	result := New(filepath.Join(cfg.InputDir, "absent.log"), nil, cfg, logging.Nop()).Run()

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestRunWritesLineErrorLog(t *testing.T) {
	cfg := newTestConfig(t)
	logPath := writeLogFile(t, cfg, "fills.log", sampleLog)

	result := New(logPath, nil, cfg, logging.Nop()).Run()
	require.True(t, result.Success)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)

	found := false
	for _, entry := range entries {
		if len(entry.Name()) >= 9 && entry.Name()[:9] == "error_log" {
			found = true
			data, err := os.ReadFile(filepath.Join(cfg.OutputDir, entry.Name()))
			require.NoError(t, err)
			assert.Contains(t, string(data), "MalformedLine")
			assert.Contains(t, string(data), "Line:       2")
		}
	}
	assert.True(t, found, "expected an error_log file in the output directory")
}

func TestRunOutputNameUsesOriginal(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.OutputNameFormat = "Parsed_{original}.xlsx"
	writeLogFile(t, cfg, "fills_20260828.log", sampleLog)

	result := New(filepath.Join(cfg.InputDir, "fills_20260828.log"), nil, cfg, logging.Nop()).Run()
	require.True(t, result.Success)

	assert.Equal(t, "Parsed_fills_20260828.xlsx", filepath.Base(result.OutputFile))
}
