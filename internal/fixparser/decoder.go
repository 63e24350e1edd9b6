// =============================================================================
// FIX Log to XLSX Converter - Message Decoder Module
// =============================================================================
//
// This module decodes one raw log line into a structured Message. A line has
// two parts separated by the literal "]: ":
//
//   Session MktGW-3 (TID=XYZ123) | NewOrder]: 8=FIX.4.4|35=D|55=AAPL|54=1
//   \_______________ preamble ___________/   \_________ body __________/
//
// The preamble is free text written by the logging session; the transaction
// ID and the order type are extracted from it by plain text matching, not by
// structural parsing. The body is a pipe-delimited sequence of tag=value
// pairs. Known tags are mapped to their dictionary column names, the three
// party tags are folded into index-aligned sequences, and unknown tags are
// kept by raw code so no data is silently lost.
//
// Decoding is a pure function of the input line: no I/O, no shared state.
// A line can fail to decode only when the preamble separator is missing; the
// decoder reports that per line and leaves the skip-or-abort policy to the
// caller.
//
// =============================================================================

package fixparser

import (
	"fmt"
	"strings"

	"github.com/finlogtools/fix-to-xlsx/internal/fixtags"
	"github.com/finlogtools/fix-to-xlsx/internal/types"
)

// =============================================================================
// WIRE CONSTANTS
// =============================================================================

const (
	// preambleSeparator splits the free-text preamble from the message body.
	// The first occurrence wins.
	preambleSeparator = "]: "

	// tidMarker starts the transaction identifier inside the preamble.
	tidMarker = "(TID="

	// orderTypeMarker precedes the order classifier inside the preamble.
	orderTypeMarker = "| "

	// fieldDelimiter separates tag=value pairs inside the message body.
	fieldDelimiter = "|"
)

// Sentinels used when the preamble carries no extractable value. They are
// real cell values, not absence markers: a decoded message always has a TID
// and an order type column entry.
const (
	UnknownTID       = "Unknown TID"
	UnknownOrderType = "Unknown Order Type"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// MalformedLineError reports a line that cannot be decoded because it has no
// preamble/body separator. It is returned per line so the batch driver can
// choose between skip-and-continue and abort without losing sibling lines.
type MalformedLineError struct {
	// Line is the offending input line.
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line has no %q separator: %q", preambleSeparator, truncate(e.Line, 120))
}

// truncate shortens long lines for error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// =============================================================================
// DECODER
// =============================================================================

// Decoder decodes raw log lines against a field dictionary.
// Stateless apart from the dictionary reference; safe for concurrent use.
type Decoder struct {
	dict *fixtags.Dictionary
}

// NewDecoder creates a Decoder.
//
// PARAMETERS:
//   - dict: The field dictionary to decode against. Pass nil for the
//     built-in dictionary.
func NewDecoder(dict *fixtags.Dictionary) *Decoder {
	if dict == nil {
		dict = fixtags.Default()
	}
	return &Decoder{dict: dict}
}

// Decode decodes a single log line.
//
// PARAMETERS:
//   - line: The full raw log line.
//
// RETURNS:
//   - The decoded message.
//   - A *MalformedLineError if the line has no preamble/body separator.
//     This is the only failure mode.
//
// DECODING STEPS:
//  1. Split the line on the first "]: " into preamble and body.
//  2. Extract the transaction ID and order type from the preamble.
//  3. Split the body on "|" and each part on its first "=".
//  4. Fold the party tags into sequences; map other known tags to their
//     column names; keep unknown tags by raw code. Parts with no "=" are
//     dropped silently (trailing delimiters are common in real logs).
func (d *Decoder) Decode(line string) (*types.Message, error) {
	sep := strings.Index(line, preambleSeparator)
	if sep < 0 {
		return nil, &MalformedLineError{Line: line}
	}

	preamble := line[:sep]
	body := line[sep+len(preambleSeparator):]

	tid, orderType := extractPreamble(preamble)

	msg := &types.Message{
		TID:       tid,
		OrderType: orderType,
		Fields:    make(map[string]string),
		Unknown:   make(map[string]string),
	}

	var parties types.PartyGroup

	for _, part := range strings.Split(body, fieldDelimiter) {
		eq := strings.Index(part, "=")
		if eq < 0 {
			// Malformed sub-field. Dropped, not an error.
			continue
		}
		tag, value := part[:eq], part[eq+1:]

		field, known := d.dict.Lookup(tag)
		switch {
		case known && field.Repeating:
			if appendParty(&parties, tag, value) {
				continue
			}
			// A repeating tag outside the party group has no sequence
			// slot; fall back to scalar semantics.
			msg.Fields[field.Name] = value

		case known:
			// Last occurrence wins when a non-repeating tag repeats.
			msg.Fields[field.Name] = value

		default:
			if _, seen := msg.Unknown[tag]; !seen {
				msg.UnknownOrder = append(msg.UnknownOrder, tag)
			}
			msg.Unknown[tag] = value
		}
	}

	// All-or-nothing: the group is attached as soon as any of the three
	// sequences is non-empty, without padding the others.
	if !parties.Empty() {
		msg.Parties = &parties
	}

	return msg, nil
}

// appendParty routes a party tag occurrence to its sequence.
// Returns false for repeating tags that are not part of the party group.
func appendParty(g *types.PartyGroup, tag, value string) bool {
	switch tag {
	case fixtags.TagPartyID:
		g.PartyID = append(g.PartyID, value)
	case fixtags.TagPartyIDSource:
		g.PartyIDSource = append(g.PartyIDSource, value)
	case fixtags.TagPartyRole:
		g.PartyRole = append(g.PartyRole, value)
	default:
		return false
	}
	return true
}

// =============================================================================
// PREAMBLE EXTRACTION
// =============================================================================

// extractPreamble extracts the transaction ID and the order type from the
// preamble. The two searches are independent: the markers may appear in
// either order, or not at all.
//
// The transaction ID is the preamble prefix up to and including the first
// ")" at or after the "(TID=" marker, whitespace-trimmed. A marker with no
// closing paren counts as no TID.
//
// The order type is everything after the first "| " occurrence, trimmed.
// Known limitation: if the preamble itself contains an earlier "| ", the
// extracted order type includes the trailing text after it. First-occurrence
// matching is kept for compatibility with existing consumers of the output.
func extractPreamble(preamble string) (tid, orderType string) {
	tid = UnknownTID
	if marker := strings.Index(preamble, tidMarker); marker >= 0 {
		if end := strings.Index(preamble[marker:], ")"); end >= 0 {
			tid = strings.TrimSpace(preamble[:marker+end+1])
		}
	}

	orderType = UnknownOrderType
	if marker := strings.Index(preamble, orderTypeMarker); marker >= 0 {
		orderType = strings.TrimSpace(preamble[marker+len(orderTypeMarker):])
	}

	return tid, orderType
}
