// =============================================================================
// FIX Log to XLSX Converter - Line Scanner
// =============================================================================
//
// LineScanner is the streaming line reader feeding the decoder. It walks a
// log file one line at a time, skips blank lines, and tracks the original
// 1-indexed line number so decode failures can be reported against the
// source file. Blank-line skipping does not disturb the numbering: a message
// on physical line 7 is reported as line 7 regardless of how many blank
// lines precede it.
//
// USAGE:
//   scanner, err := OpenLineScanner(path)
//   if err != nil {
//       return err
//   }
//   defer scanner.Close()
//
//   for scanner.Next() {
//       line := scanner.Line()
//       // Process the line...
//   }
//
//   if err := scanner.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package converter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single log line. FIX log lines are long but bounded;
// 1 MiB leaves generous headroom over anything seen in production logs.
const maxLineSize = 1024 * 1024

// LineScanner reads non-blank lines from a log file in order.
type LineScanner struct {
	file    *os.File
	scanner *bufio.Scanner

	line   string
	number int
	err    error
}

// OpenLineScanner opens a log file for scanning.
func OpenLineScanner(path string) (*LineScanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLineScanner(file), nil
}

// NewLineScanner wraps an open file. The scanner owns the file and closes it
// via Close.
func NewLineScanner(file *os.File) *LineScanner {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &LineScanner{file: file, scanner: scanner}
}

// Next advances to the next non-blank line.
// Returns false at end of file or on a read error.
func (s *LineScanner) Next() bool {
	if s.err != nil {
		return false
	}

	for s.scanner.Scan() {
		s.number++
		line := s.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.line = line
		return true
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("error reading line %d: %w", s.number+1, err)
	}
	return false
}

// Line returns the current line.
func (s *LineScanner) Line() string {
	return s.line
}

// Number returns the 1-indexed source line number of the current line.
func (s *LineScanner) Number() int {
	return s.number
}

// Err returns any error that occurred during scanning.
func (s *LineScanner) Err() error {
	return s.err
}

// Close closes the underlying file.
func (s *LineScanner) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ensure the interface surface stays io.Closer compatible.
var _ io.Closer = (*LineScanner)(nil)
