package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceWindowedLen(t *testing.T) {
	r := NewFromString("0123456789")
	s := r.Slice(2, 7)
	assert.Equal(t, uint64(5), s.LenChars())
	assert.Equal(t, uint64(5), s.LenBytes())
	assert.Equal(t, "23456", s.String())
}

func TestSliceSubSlice(t *testing.T) {
	r := NewFromString("0123456789")
	s := r.Slice(2, 9) // "2345678"
	sub := s.Slice(1, 4)
	assert.Equal(t, "345", sub.String())
}

func TestSliceLines(t *testing.T) {
	r := NewFromString("aaa\nbbb\nccc\nddd")
	s := r.Slice(2, 10) // chars[2:10) is "a\nbbb\ncc"
	want := r.String()[2:10]
	assert.Equal(t, want, s.String())

	it := s.Lines()
	var lines []string
	for {
		l, ok := it.Next()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	joined := ""
	for _, l := range lines {
		joined += l
	}
	assert.Equal(t, want, joined)
}

func TestSliceSurvivesSourceEdit(t *testing.T) {
	r := NewFromString("hello world")
	s := r.Slice(0, 5)
	require.NoError(t, r.Insert(0, "XXX"))
	assert.Equal(t, "hello", s.String())
	assert.Equal(t, "XXXhello world", r.String())
}

func TestSliceByteCharTranslation(t *testing.T) {
	r := NewFromString("0123456789")
	s := r.Slice(3, 8)
	b, err := s.CharToByte(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), b)
	c, err := s.ByteToChar(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c)
}

func TestSliceByteCharLineTranslation(t *testing.T) {
	r := NewFromString("aaa\nbbb\nccc\nddd")
	s := r.Slice(2, 14) // "a\nbbb\nccc\ndd" window, starts mid first line

	assert.Equal(t, uint64(4), s.LenLines())

	// line 0 of the window starts at the window's own origin, even though
	// the underlying line "aaa\n" started two chars earlier.
	lineStartChar, err := s.LineToChar(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), lineStartChar)

	lineStartByte, err := s.LineToByte(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), lineStartByte)

	byteIdx, err := s.LineToByte(1)
	require.NoError(t, err)
	charIdx, err := s.LineToChar(1)
	require.NoError(t, err)
	assert.Equal(t, byteIdx, charIdx) // ASCII window, byte and char offsets coincide

	gotLine, err := s.ByteToLine(byteIdx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gotLine)

	gotCharLine, err := s.CharToLine(charIdx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gotCharLine)

	_, err = s.LineToByte(s.LenLines())
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = s.LineToChar(s.LenLines())
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSliceByteToLineRejectsScalarBoundaryViolation(t *testing.T) {
	r := NewFromString("a\nhéllo")
	s := r.Slice(0, r.LenChars())
	_, err := s.ByteToLine(4) // byte 4 is inside the two-byte 'é'
	assert.ErrorIs(t, err, ErrScalarBoundary)
}

func TestSliceByteToCharRejectsScalarBoundaryViolation(t *testing.T) {
	r := NewFromString("héllo")
	s := r.Slice(0, r.LenChars())
	_, err := s.ByteToChar(2) // byte 2 is inside the two-byte 'é'
	assert.ErrorIs(t, err, ErrScalarBoundary)
}

func TestSliceInvalidRangePanics(t *testing.T) {
	r := NewFromString("abc")
	assert.Panics(t, func() {
		r.Slice(2, 1)
	})
	assert.Panics(t, func() {
		r.Slice(0, 10)
	})
}
