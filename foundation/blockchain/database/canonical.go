package database

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Canonical renders the block as JSON with keys sorted, ", " and ": " as
// separators, floats in shortest round-trip form with a mandatory fraction or
// exponent, and every non-ASCII rune escaped. Two blocks with the same field
// values always render to the same bytes.
func (b Block) Canonical() []byte {
	var buf bytes.Buffer

	buf.WriteString(`{"index": `)
	buf.WriteString(strconv.FormatUint(b.Index, 10))
	buf.WriteString(`, "previous_hash": `)
	writeString(&buf, b.PreviousHash)
	buf.WriteString(`, "proof": `)
	buf.WriteString(strconv.FormatUint(b.Proof, 10))
	buf.WriteString(`, "timestamp": `)
	buf.WriteString(formatFloat(b.Timestamp))
	buf.WriteString(`, "transactions": [`)
	for i, tx := range b.Transactions {
		if i > 0 {
			buf.WriteString(", ")
		}
		tx.canonical(&buf)
	}
	buf.WriteString("]}")

	return buf.Bytes()
}

// canonical writes the transaction in the same form used by Block.Canonical.
func (tx Tx) canonical(buf *bytes.Buffer) {
	buf.WriteString(`{"amount": `)
	buf.WriteString(tx.Amount.canonical())
	buf.WriteString(`, "recipient": `)
	writeString(buf, tx.Recipient)
	buf.WriteString(`, "sender": `)
	writeString(buf, tx.Sender)
	buf.WriteString("}")
}

// =============================================================================

// formatFloat renders f using the shortest representation that round trips.
// Magnitudes below 1e-4 or at or above 1e16 use exponent form.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// writeString writes s as a quoted JSON string with all non-ASCII runes
// escaped as \uXXXX, using surrogate pairs outside the basic plane.
func writeString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"

	escape := func(r rune) {
		buf.WriteString(`\u`)
		buf.WriteByte(hex[r>>12&0xf])
		buf.WriteByte(hex[r>>8&0xf])
		buf.WriteByte(hex[r>>4&0xf])
		buf.WriteByte(hex[r&0xf])
	}

	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				escape(r)
			case r < utf8.RuneSelf:
				buf.WriteByte(byte(r))
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				escape(r1)
				escape(r2)
			default:
				escape(r)
			}
		}
	}
	buf.WriteByte('"')
}
