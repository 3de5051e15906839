package rope

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReaderRoundTrip(t *testing.T) {
	text := strings.Repeat("stream this content ", 500)
	r, err := FromReader(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, text, r.String())
}

// shortReader returns bytes a few at a time to exercise chunk-boundary
// handling across multiple Read calls, including mid-scalar splits.
type shortReader struct {
	data []byte
	pos  int
	step int
}

func (s *shortReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, nil
	}
	n := s.step
	if n > len(p) {
		n = len(p)
	}
	if s.pos+n > len(s.data) {
		n = len(s.data) - s.pos
	}
	copy(p, s.data[s.pos:s.pos+n])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

func TestFromReaderHandlesSplitScalars(t *testing.T) {
	text := "héllo wörld" + strings.Repeat("ü", 100)
	r, err := FromReader(&shortReader{data: []byte(text), step: 3})
	require.NoError(t, err)
	assert.Equal(t, text, r.String())
}

func TestFromReaderRejectsInvalidUTF8(t *testing.T) {
	bad := []byte{0x68, 0x65, 0xff, 0xfe, 0x6f}
	_, err := FromReader(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestWriteTo(t *testing.T) {
	text := strings.Repeat("write this out ", 300)
	r := NewFromString(text)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(text)), n)
	assert.Equal(t, text, buf.String())
}
