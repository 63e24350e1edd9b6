// =============================================================================
// FIX Log to XLSX Converter - Table Assembler Module
// =============================================================================
//
// This module turns a batch of decoded messages, each with its own set of
// populated fields, into one rectangular table with a single consistent
// column order:
//
//   1. TID and Order Type (preamble pseudo-columns)
//   2. every dictionary column, in declared order
//   3. one "Unknown Tag <code>" column per unknown tag, in the order the
//      tags first appeared across the batch
//
// Column discovery depends on full-batch, in-order traversal, so the
// assembler is strictly sequential. Two runs over the same messages in the
// same order produce identical column sequences.
//
// The assembler has no failure mode: absent data degrades to an empty cell,
// and an empty batch yields the canonical header with zero rows.
//
// =============================================================================

package tabulator

import (
	"github.com/finlogtools/fix-to-xlsx/internal/fixtags"
	"github.com/finlogtools/fix-to-xlsx/internal/types"
)

// =============================================================================
// COLUMN REGISTRY
// =============================================================================

// columnRegistry tracks unknown-tag columns in first-appearance order.
// The order slice is the source of truth; the set only answers membership.
type columnRegistry struct {
	order []string
	seen  map[string]bool
}

func newColumnRegistry() *columnRegistry {
	return &columnRegistry{seen: make(map[string]bool)}
}

// add registers a tag code. Re-discovery of the same code across messages
// does not create a new column.
func (r *columnRegistry) add(tag string) {
	if r.seen[tag] {
		return
	}
	r.seen[tag] = true
	r.order = append(r.order, tag)
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler builds output tables against a field dictionary.
type Assembler struct {
	dict *fixtags.Dictionary
}

// NewAssembler creates an Assembler.
//
// PARAMETERS:
//   - dict: The field dictionary defining the canonical column order.
//     Pass nil for the built-in dictionary.
func NewAssembler(dict *fixtags.Dictionary) *Assembler {
	if dict == nil {
		dict = fixtags.Default()
	}
	return &Assembler{dict: dict}
}

// Assemble builds the output table for a batch of messages.
//
// PARAMETERS:
//   - messages: The decoded messages, in input line order.
//
// RETURNS:
//   - The rectangular table. Every row has a cell, possibly empty, for
//     every column. Repeating-group cells carry their sequences; the
//     flattening to a display string is the writer's concern.
func (a *Assembler) Assemble(messages []*types.Message) *types.Table {
	// Discover unknown-tag columns. Message order and per-message key order
	// together define the column order.
	unknown := newColumnRegistry()
	for _, msg := range messages {
		for _, tag := range msg.UnknownOrder {
			unknown.add(tag)
		}
	}

	// Canonical header: pseudo-columns, dictionary columns, unknown columns.
	columns := make([]string, 0, 2+a.dict.Len()+len(unknown.order))
	columns = append(columns, fixtags.ColumnTID, fixtags.ColumnOrderType)
	columns = append(columns, a.dict.Columns()...)
	for _, tag := range unknown.order {
		columns = append(columns, fixtags.UnknownColumn(tag))
	}

	table := &types.Table{
		Columns: columns,
		Rows:    make([]types.Row, 0, len(messages)),
	}

	for _, msg := range messages {
		table.Rows = append(table.Rows, a.materializeRow(msg, unknown.order))
	}

	return table
}

// materializeRow builds one row with a cell for every column.
func (a *Assembler) materializeRow(msg *types.Message, unknownTags []string) types.Row {
	row := make(types.Row, 2+a.dict.Len()+len(unknownTags))

	row[fixtags.ColumnTID] = types.Cell{Value: msg.TID}
	row[fixtags.ColumnOrderType] = types.Cell{Value: msg.OrderType}

	for _, field := range a.dict.Fields() {
		if field.Repeating {
			if seq := partySequence(msg.Parties, field.Tag); seq != nil {
				row[field.Name] = types.Cell{List: seq}
				continue
			}
			// Repeating tags outside the party group decode as scalars;
			// mirror that here so the value is not dropped.
			row[field.Name] = types.Cell{Value: msg.Fields[field.Name]}
			continue
		}
		// Zero Cell for absent fields keeps the row rectangular.
		row[field.Name] = types.Cell{Value: msg.Fields[field.Name]}
	}

	for _, tag := range unknownTags {
		row[fixtags.UnknownColumn(tag)] = types.Cell{Value: msg.Unknown[tag]}
	}

	return row
}

// partySequence returns the sequence a party tag contributes to, or nil when
// the message has no party group or the tag is not a party tag.
func partySequence(g *types.PartyGroup, tag string) []string {
	if g == nil {
		return nil
	}
	switch tag {
	case fixtags.TagPartyID:
		return g.PartyID
	case fixtags.TagPartyIDSource:
		return g.PartyIDSource
	case fixtags.TagPartyRole:
		return g.PartyRole
	}
	return nil
}
