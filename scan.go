package rope

import "unicode/utf8"

// byteOffsetForChar scans b (leaf-local bytes, valid UTF-8) and returns the
// byte offset of the charIdx-th scalar. charIdx == the scalar count of b is
// permitted and returns len(b) (the one-past-end position, spec section 9).
func byteOffsetForChar(b []byte, charIdx uint64) int {
	var c uint64
	i := 0
	for i < len(b) {
		if c == charIdx {
			return i
		}
		_, size := utf8.DecodeRune(b[i:])
		i += size
		c++
	}
	return len(b)
}

// charIndexForByte counts the scalars in b[:byteIdx]. byteIdx must be a
// scalar boundary of b.
func charIndexForByte(b []byte, byteIdx int) uint64 {
	var c uint64
	i := 0
	for i < byteIdx {
		_, size := utf8.DecodeRune(b[i:])
		i += size
		c++
	}
	return c
}

// byteOffsetForLine returns the byte offset just past the lineIdx-th line
// terminator in b (lineIdx counts terminators within b itself; 0 means the
// start of b). A CRLF ends after its LF. It returns len(b) if b contains
// fewer than lineIdx terminators.
func byteOffsetForLine(b []byte, lineIdx uint64) int {
	if lineIdx == 0 {
		return 0
	}
	var seen uint64
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if isLineTerminator(b, i, r, size) {
			seen++
			if seen == lineIdx {
				end := i + size
				if r == carriageReturn && end < len(b) && b[end] == '\n' {
					end++
				}
				return end
			}
		}
		i += size
	}
	return len(b)
}

// lineIndexForByte counts the line terminators that end before byteIdx in b.
// A CRLF whose LF sits at byteIdx is not yet complete and is not counted.
// byteIdx must be a scalar boundary of b.
func lineIndexForByte(b []byte, byteIdx int) uint64 {
	var lines uint64
	i := 0
	for i < byteIdx {
		r, size := utf8.DecodeRune(b[i:])
		if isLineTerminator(b, i, r, size) {
			end := i + size
			if !(r == carriageReturn && end == byteIdx && end < len(b) && b[end] == '\n') {
				lines++
			}
		}
		i += size
	}
	return lines
}
