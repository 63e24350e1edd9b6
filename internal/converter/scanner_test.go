package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openScanner(t *testing.T, content string) *LineScanner {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	scanner, err := OpenLineScanner(path)
	require.NoError(t, err)
	t.Cleanup(func() { scanner.Close() })
	return scanner
}

func TestScannerSkipsBlankLinesKeepsNumbers(t *testing.T) {
	// The message on physical line 7 must be reported as line 7.
	content := "first\n\n\n   \nfifth\n\nseventh\n"
	scanner := openScanner(t, content)

	type scanned struct {
		line   string
		number int
	}
	var got []scanned
	for scanner.Next() {
		got = append(got, scanned{scanner.Line(), scanner.Number()})
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, []scanned{
		{"first", 1},
		{"fifth", 5},
		{"seventh", 7},
	}, got)
}

func TestScannerEmptyFile(t *testing.T) {
	scanner := openScanner(t, "")

	assert.False(t, scanner.Next())
	assert.NoError(t, scanner.Err())
}

func TestScannerBlankOnlyFile(t *testing.T) {
	scanner := openScanner(t, "\n  \n\t\n")

	assert.False(t, scanner.Next())
	assert.NoError(t, scanner.Err())
}

func TestScannerNoTrailingNewline(t *testing.T) {
	scanner := openScanner(t, "only line")

	require.True(t, scanner.Next())
	assert.Equal(t, "only line", scanner.Line())
	assert.Equal(t, 1, scanner.Number())
	assert.False(t, scanner.Next())
}

func TestOpenLineScannerMissingFile(t *testing.T) {
	_, err := OpenLineScanner(filepath.Join(t.TempDir(), "absent.log"))
	assert.Error(t, err)
}
