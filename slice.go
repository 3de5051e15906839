package rope

// Slice is RopeSlice from spec section 4.3: a borrowed, read-only view of
// a [startChar, endChar) char window over a shared root. It holds its own
// clone of the root handle so it stays valid independent of whatever the
// Rope it was taken from does afterward (Rope is copy-on-write, so the
// original tree nodes a Slice points at are never mutated in place).
type Slice struct {
	root      handle
	startChar uint64
	endChar   uint64
}

func (s *Slice) startByte() uint64 { return descendCharToByte(s.root, s.startChar) }
func (s *Slice) endByte() uint64   { return descendCharToByte(s.root, s.endChar) }

// LenChars returns the number of scalars in the slice's window.
func (s *Slice) LenChars() uint64 { return s.endChar - s.startChar }

// LenBytes returns the number of bytes in the slice's window.
func (s *Slice) LenBytes() uint64 { return s.endByte() - s.startByte() }

// LenLines returns the number of lines spanned by the slice's window (spec
// section 6: a window with no terminators has 1 line).
func (s *Slice) LenLines() uint64 {
	if s.startChar == s.endChar {
		return 1
	}
	return descendCharToLine(s.root, s.endChar) - descendCharToLine(s.root, s.startChar) + 1
}

// ByteToChar converts a byte offset relative to the start of the slice's
// window into a char index relative to the same origin. byteIdx must be a
// scalar boundary, or ErrScalarBoundary is returned (spec section 6/7).
func (s *Slice) ByteToChar(byteIdx uint64) (uint64, error) {
	if byteIdx > s.LenBytes() {
		return 0, ErrOutOfBounds
	}
	abs := s.startByte() + byteIdx
	if !isByteScalarBoundary(s.root, abs) {
		return 0, ErrScalarBoundary
	}
	return descendByteToChar(s.root, abs) - s.startChar, nil
}

// CharToByte converts a char index relative to the slice's window into a
// byte offset relative to the same origin.
func (s *Slice) CharToByte(charIdx uint64) (uint64, error) {
	if charIdx > s.LenChars() {
		return 0, ErrOutOfBounds
	}
	return descendCharToByte(s.root, s.startChar+charIdx) - s.startByte(), nil
}

// ByteToLine converts a byte offset relative to the slice's window into a
// line index relative to the window's first line. byteIdx must be a scalar
// boundary, or ErrScalarBoundary is returned (spec section 6/7).
func (s *Slice) ByteToLine(byteIdx uint64) (uint64, error) {
	if byteIdx > s.LenBytes() {
		return 0, ErrOutOfBounds
	}
	abs := s.startByte() + byteIdx
	if !isByteScalarBoundary(s.root, abs) {
		return 0, ErrScalarBoundary
	}
	base := descendByteToLine(s.root, s.startByte())
	return descendByteToLine(s.root, abs) - base, nil
}

// LineToByte converts a line index relative to the slice's window (0 is the
// window's first line) into a byte offset relative to the window's start.
func (s *Slice) LineToByte(lineIdx uint64) (uint64, error) {
	if lineIdx >= s.LenLines() {
		return 0, ErrOutOfBounds
	}
	if lineIdx == 0 {
		return 0, nil
	}
	base := descendByteToLine(s.root, s.startByte())
	return descendLineToByte(s.root, base+lineIdx) - s.startByte(), nil
}

// CharToLine converts a char index relative to the slice's window into a
// line index relative to the window's first line.
func (s *Slice) CharToLine(charIdx uint64) (uint64, error) {
	if charIdx > s.LenChars() {
		return 0, ErrOutOfBounds
	}
	base := descendCharToLine(s.root, s.startChar)
	return descendCharToLine(s.root, s.startChar+charIdx) - base, nil
}

// LineToChar converts a line index relative to the slice's window (0 is the
// window's first line) into a char index relative to the window's start.
func (s *Slice) LineToChar(lineIdx uint64) (uint64, error) {
	if lineIdx >= s.LenLines() {
		return 0, ErrOutOfBounds
	}
	if lineIdx == 0 {
		return 0, nil
	}
	base := descendCharToLine(s.root, s.startChar)
	return descendLineToChar(s.root, base+lineIdx) - s.startChar, nil
}

// Line returns line n (0-indexed, relative to the slice's window), clipped
// at the window's edges for its first and last line.
func (s *Slice) Line(n uint64) (string, error) {
	total := s.LenLines()
	if n >= total {
		return "", ErrOutOfBounds
	}
	if s.startChar == s.endChar {
		return "", nil
	}
	baseLine := descendCharToLine(s.root, s.startChar)

	startC := s.startChar
	if n > 0 {
		startC = descendLineToChar(s.root, baseLine+n)
	}
	endC := s.endChar
	if n+1 < total {
		endC = descendLineToChar(s.root, baseLine+n+1)
	}
	return sliceString(s.root, descendCharToByte(s.root, startC), descendCharToByte(s.root, endC)), nil
}

// Slice returns a sub-window of s, with offsets relative to s's own window.
func (s *Slice) Slice(startChar, endChar uint64) *Slice {
	if startChar > endChar || endChar > s.LenChars() {
		panic("rope: invalid slice range")
	}
	return &Slice{root: s.root.clone(), startChar: s.startChar + startChar, endChar: s.startChar + endChar}
}

// String materializes the slice's window.
func (s *Slice) String() string {
	return sliceString(s.root, s.startByte(), s.endByte())
}

// Chunks returns a left-to-right iterator over the slice's window.
func (s *Slice) Chunks() *ChunkIter {
	return newChunkIter(s.root, s.startByte(), s.endByte())
}

// Bytes returns a left-to-right byte iterator over the slice's window.
func (s *Slice) Bytes() *ByteIter {
	return &ByteIter{ci: s.Chunks()}
}

// Chars returns a left-to-right rune iterator over the slice's window.
func (s *Slice) Chars() *CharIter {
	return &CharIter{ci: s.Chunks()}
}

// Lines returns a left-to-right iterator over the slice's lines.
func (s *Slice) Lines() *LineIter {
	return newLineIter(s)
}

func sliceString(root handle, startByte, endByte uint64) string {
	buf := make([]byte, 0, endByte-startByte)
	it := newChunkIter(root, startByte, endByte)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		buf = append(buf, c...)
	}
	return string(buf)
}
