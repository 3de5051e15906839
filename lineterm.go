package rope

import "unicode/utf8"

// The eight line terminators recognized by this library (spec section 3).
// CRLF counts as a single terminator, attributed to the CR; a lone CR or a
// lone LF each count as one.
const (
	lineFeed           rune = 0x000A // LF
	verticalTab        rune = 0x000B // VT
	formFeed           rune = 0x000C // FF
	carriageReturn     rune = 0x000D // CR
	nextLine           rune = 0x0085 // NEL
	lineSeparator      rune = 0x2028 // LS
	paragraphSeparator rune = 0x2029 // PS
)

// isLineTerminator reports whether the rune r at byte offset i within b
// contributes one line-terminator occurrence. b is the buffer the rune was
// decoded from; the caller guarantees a CRLF pair is never split across two
// such buffers (the grapheme-safety pass in node.go enforces this at leaf
// boundaries), so looking one rune backwards within b is always sufficient.
func isLineTerminator(b []byte, i int, r rune, size int) bool {
	switch r {
	case carriageReturn, verticalTab, formFeed, nextLine, lineSeparator, paragraphSeparator:
		return true
	case lineFeed:
		if i > 0 {
			prev, _ := utf8.DecodeLastRune(b[:i])
			if prev == carriageReturn {
				// Already counted as part of the CRLF pair at the CR.
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isLineTerminatorRune reports whether r is one of the eight recognized
// terminator scalars, without the CRLF-dedup rule: it recognizes "this
// scalar is part of a line break" independent of counting. The
// grapheme-safety pass does not call it; it finds cluster boundaries through
// uniseg (graphemesafety.go).
func isLineTerminatorRune(r rune) bool {
	switch r {
	case lineFeed, verticalTab, formFeed, carriageReturn, nextLine, lineSeparator, paragraphSeparator:
		return true
	default:
		return false
	}
}
