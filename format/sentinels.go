package format

// PH is the in-memory placeholder code point substituted for every masked
// literal in a skeleton. It never appears on the wire as a raw byte: the
// registry carries it UTF-8 encoded like any other rune, and the collision
// guard (tokenize.Tokenizer) aborts to passthrough for any raw input line
// that already contains it.
const PH rune = ''

// RS separates skeletons within the registry. Like PH, a raw input line
// containing RS triggers passthrough rather than ever being templated.
const RS rune = ''

// PHStr and RSStr are the string forms of PH/RS, handy for strings.Builder
// and strings.Split call sites.
var (
	PHStr = string(PH)
	RSStr = string(RS)
)

// Byte-stuffing sentinels for the variables buffer (spec §4.5). These live
// in the post-UTF-8 byte layer and are unrelated to PH/RS, which are
// Unicode code points used only before the variables buffer is built.
//
// The two container layouts use genuinely different wire formats for the
// variables buffer, not just different stream framing:
//
//   - Unified escapes every literal occurrence of the sentinel bytes
//     ("Always-Escaped") and terminates a column with the single byte
//     ColumnSep.
//   - Split never escapes: it terminates a column with the two-byte
//     sentinel SplitColumnSep, relying on the optimizer's sampling heuristic
//     to only pick Split for corpora where that's safe.
//
// CellSep (the row/cell separator within a column) is shared by both
// layouts unescaped; only the column terminator and the escaping policy
// differ.
const (
	// EscapeByte introduces an escaped sentinel byte. Unified only.
	EscapeByte byte = 0x01
	// CellSep closes one variable value (a "row" within a column). Used
	// unescaped by both layouts.
	CellSep byte = 0x00
	// ColumnSep closes one column under Unified.
	ColumnSep byte = 0x02
)

// SplitColumnSep closes one column under Split: an unescaped two-byte
// sentinel rather than Unified's single escaped ColumnSep byte.
var SplitColumnSep = [2]byte{0xFF, 0xFF}

// Escaped forms of the three sentinel bytes, each introduced by EscapeByte.
// Unified only; Split never escapes.
var (
	EscSeqEscape = [2]byte{EscapeByte, 0x01}
	EscSeqCell   = [2]byte{EscapeByte, 0x00}
	EscSeqColumn = [2]byte{EscapeByte, 0x03}
)
