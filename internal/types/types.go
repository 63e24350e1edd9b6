// =============================================================================
// FIX Log to XLSX Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - fixparser
//   - tabulator
//   - xlsxwriter
//   - converter
//
// =============================================================================

package types

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// Message is one decoded FIX log line. It is created once by the decoder and
// never mutated afterwards.
type Message struct {
	// TID is the transaction identifier extracted from the line preamble.
	// If the preamble carries no TID marker, this holds the "Unknown TID"
	// sentinel rather than an empty string.
	TID string

	// OrderType is the free-text order classifier extracted from the line
	// preamble. Falls back to the "Unknown Order Type" sentinel.
	OrderType string

	// Fields contains single-valued known fields.
	// Key is the dictionary column name (e.g. "35 MsgType"), value is the
	// raw message value. When a non-repeating tag occurs more than once in
	// one line, the last occurrence wins.
	Fields map[string]string

	// Parties holds the repeating party tags (448/447/452) folded into
	// index-aligned sequences. Nil when the message carries none of them.
	Parties *PartyGroup

	// Unknown contains fields whose tag code is not in the dictionary.
	// Key is the raw tag code, value is the raw message value.
	Unknown map[string]string

	// UnknownOrder lists the keys of Unknown in the order they were first
	// seen within this message. Go maps do not preserve insertion order, so
	// the order is tracked explicitly; the tabulator depends on it for
	// deterministic column discovery.
	UnknownOrder []string

	// LineNumber is the 1-indexed line number in the source log file.
	// Useful for error reporting.
	LineNumber int
}

// PartyGroup holds the three repeating party tags as parallel sequences.
// Occurrences at the same index belong together: PartyID[i] goes with
// PartyIDSource[i] and PartyRole[i]. The sequences are attached as decoded;
// asymmetric occurrence counts are not padded or rejected.
type PartyGroup struct {
	// PartyID holds the values of every 448 occurrence, in encounter order.
	PartyID []string

	// PartyIDSource holds the values of every 447 occurrence.
	PartyIDSource []string

	// PartyRole holds the values of every 452 occurrence.
	PartyRole []string
}

// Empty reports whether no party tag occurred at all.
func (g *PartyGroup) Empty() bool {
	return len(g.PartyID) == 0 && len(g.PartyIDSource) == 0 && len(g.PartyRole) == 0
}

// =============================================================================
// TABLE TYPES
// =============================================================================

// Cell is a single table cell. Exactly one of Value or List is meaningful:
// repeating-group columns carry their sequence in List, everything else is a
// scalar in Value. A zero Cell renders as an empty cell.
type Cell struct {
	// Value is the scalar cell content.
	Value string

	// List is the sequence content for repeating-group cells.
	// Nil for scalar cells.
	List []string
}

// IsList reports whether the cell carries a sequence rather than a scalar.
func (c Cell) IsList() bool {
	return c.List != nil
}

// IsEmpty reports whether the cell has no content at all.
func (c Cell) IsEmpty() bool {
	return c.Value == "" && len(c.List) == 0
}

// Row maps column name to cell. Every row of an assembled table has an entry
// for every column of that table, possibly a zero Cell.
type Row map[string]Cell

// Table is the assembled, rectangular output of a batch: an ordered column
// sequence and one row per decoded message, in input order.
type Table struct {
	// Columns is the deterministic output column order: TID, Order Type,
	// dictionary columns in declared order, then unknown-tag columns in
	// first-appearance order.
	Columns []string

	// Rows contains one Row per message, in the order the messages were
	// decoded.
	Rows []Row
}
