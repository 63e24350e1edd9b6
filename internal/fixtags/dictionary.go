// =============================================================================
// FIX Log to XLSX Converter - Field Dictionary Module
// =============================================================================
//
// This module defines the field dictionary: the ordered list of FIX tag codes
// the converter recognizes by construction, together with the human-readable
// column name each tag maps to in the output workbook.
//
// The dictionary serves two distinct purposes, kept in two structures:
//   - an ordered list of fields, which defines the canonical output column
//     order (declaration order is significant)
//   - a lookup index built from that list, which defines decode-time
//     membership tests
//
// Three tags (448 PartyID, 447 PartyIDSource, 452 PartyRole) are marked as
// repeating: a single message may carry any number of occurrences of each,
// and occurrences at the same ordinal position belong together.
//
// The built-in dictionary below can be replaced at runtime from a YAML or
// XLSX dictionary file (see load.go).
//
// =============================================================================

package fixtags

import (
	"fmt"
)

// =============================================================================
// WELL-KNOWN NAMES
// =============================================================================

// Tags of the repeating party group. These are the only tags folded into
// parallel sequences during decoding.
const (
	TagPartyID       = "448"
	TagPartyIDSource = "447"
	TagPartyRole     = "452"
)

// Names of the two pseudo-columns derived from the line preamble rather than
// the tag stream. They are always the first two output columns.
const (
	ColumnTID       = "TID"
	ColumnOrderType = "Order Type"
)

// unknownColumnPrefix prefixes the raw tag code to form the column name for
// tags absent from the dictionary.
const unknownColumnPrefix = "Unknown Tag "

// UnknownColumn returns the output column name for a tag code that is not in
// the dictionary, e.g. "Unknown Tag 9999". The prefix guarantees these names
// never collide with dictionary column names, which all start with the tag
// code itself.
func UnknownColumn(tag string) string {
	return unknownColumnPrefix + tag
}

// =============================================================================
// FIELD STRUCTURE
// =============================================================================

// Field is a single dictionary entry.
type Field struct {
	// Tag is the numeric tag code as it appears on the wire (e.g. "35").
	Tag string `yaml:"tag"`

	// Name is the output column name for this tag (e.g. "35 MsgType").
	Name string `yaml:"name"`

	// Repeating marks tags that may legitimately occur multiple times per
	// message and are folded into the party group sequences.
	Repeating bool `yaml:"repeating,omitempty"`
}

// =============================================================================
// DICTIONARY STRUCTURE
// =============================================================================

// Dictionary is the validated, ordered field dictionary plus its lookup
// index. Immutable after construction; safe for concurrent use.
type Dictionary struct {
	// fields preserves declaration order. This order defines the canonical
	// output column order.
	fields []Field

	// byTag is the lookup index for decode-time membership tests.
	byTag map[string]Field
}

// New builds a Dictionary from an ordered field list.
//
// PARAMETERS:
//   - fields: The dictionary entries, in output column order.
//
// RETURNS:
//   - The validated dictionary.
//   - An error if the list violates a dictionary invariant: empty list,
//     blank tag or name, duplicate tag code, or duplicate column name.
func New(fields []Field) (*Dictionary, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("field dictionary is empty")
	}

	byTag := make(map[string]Field, len(fields))
	byName := make(map[string]bool, len(fields))

	for i, f := range fields {
		if f.Tag == "" {
			return nil, fmt.Errorf("dictionary entry %d has an empty tag code", i+1)
		}
		if f.Name == "" {
			return nil, fmt.Errorf("dictionary entry for tag %s has an empty column name", f.Tag)
		}
		if _, exists := byTag[f.Tag]; exists {
			return nil, fmt.Errorf("duplicate tag code in dictionary: %s", f.Tag)
		}
		if byName[f.Name] {
			return nil, fmt.Errorf("duplicate column name in dictionary: %s", f.Name)
		}
		byTag[f.Tag] = f
		byName[f.Name] = true
	}

	// Copy the slice so later mutation of the caller's slice cannot skew
	// the column order.
	owned := make([]Field, len(fields))
	copy(owned, fields)

	return &Dictionary{fields: owned, byTag: byTag}, nil
}

// Lookup returns the dictionary entry for a tag code.
func (d *Dictionary) Lookup(tag string) (Field, bool) {
	f, ok := d.byTag[tag]
	return f, ok
}

// Fields returns the dictionary entries in declaration order.
// The returned slice must not be modified.
func (d *Dictionary) Fields() []Field {
	return d.fields
}

// Columns returns the dictionary column names in declaration order.
func (d *Dictionary) Columns() []string {
	cols := make([]string, len(d.fields))
	for i, f := range d.fields {
		cols[i] = f.Name
	}
	return cols
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.fields)
}

// =============================================================================
// BUILT-IN DICTIONARY
// =============================================================================

// defaultFields is the built-in tag table. Order is significant: it defines
// the output column order after the TID and Order Type pseudo-columns.
var defaultFields = []Field{
	{Tag: "8", Name: "8 BeginString"},
	{Tag: "9", Name: "9 BodyLength"},
	{Tag: "35", Name: "35 MsgType"},
	{Tag: "34", Name: "34 MsgSeqNum"},
	{Tag: "49", Name: "49 SenderCompID"},
	{Tag: "56", Name: "56 TargetCompID"},
	{Tag: "57", Name: "57 TargetSubID"},
	{Tag: "52", Name: "52 SendingTime"},
	{Tag: "11", Name: "11 ClOrdID"},
	{Tag: "17", Name: "17 ExecID"},
	{Tag: "37", Name: "37 OrderID"},
	{Tag: "198", Name: "198 SecondaryOrderId"},
	{Tag: "150", Name: "150 ExecType"},
	{Tag: "453", Name: "453 NoPartyIDs"},
	{Tag: "448", Name: "448 PartyID", Repeating: true},
	{Tag: "447", Name: "447 PartyIDSource", Repeating: true},
	{Tag: "452", Name: "452 PartyRole", Repeating: true},
	{Tag: "55", Name: "55 Symbol"},
	{Tag: "48", Name: "48 SecurityID"},
	{Tag: "22", Name: "22 SecurityIDSource"},
	{Tag: "762", Name: "762 SecuritySubType"},
	{Tag: "1", Name: "1 Account"},
	{Tag: "14", Name: "14 CumQty"},
	{Tag: "31", Name: "31 LastPx"},
	{Tag: "32", Name: "32 LastQty"},
	{Tag: "38", Name: "38 OrderQty"},
	{Tag: "110", Name: "110 MinQty"},
	{Tag: "39", Name: "39 OrdStatus"},
	{Tag: "40", Name: "40 OrdType"},
	{Tag: "44", Name: "44 Price"},
	{Tag: "847", Name: "847 TargetStrategy"},
	{Tag: "54", Name: "54 Side"},
	{Tag: "59", Name: "59 TimeInForce"},
	{Tag: "60", Name: "60 TransactTime"},
	{Tag: "75", Name: "75 TradeDate"},
	{Tag: "64", Name: "64 SettlDate"},
	{Tag: "151", Name: "151 LeavesQty"},
	{Tag: "880", Name: "880 TrdMatchID"},
	{Tag: "1891", Name: "1891 TrdMatchSubID"},
	{Tag: "1057", Name: "1057 AggressorIndicator"},
	{Tag: "381", Name: "381 GrossTradeAmt"},
	{Tag: "797", Name: "797 CopyMsgIndicator"},
	{Tag: "10", Name: "10 CheckSum"},
}

// Default returns the built-in dictionary.
func Default() *Dictionary {
	d, err := New(defaultFields)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(fmt.Sprintf("fixtags: built-in dictionary invalid: %v", err))
	}
	return d
}
