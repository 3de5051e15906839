package rope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafTextSetBytesInlineVsSpill(t *testing.T) {
	small := newLeafText([]byte("hello"))
	assert.False(t, small.isSpilled())
	assert.Equal(t, "hello", string(small.bytes()))

	big := newLeafText([]byte(strings.Repeat("x", maxLeafBytes+1)))
	assert.True(t, big.isSpilled())
	assert.Equal(t, maxLeafBytes+1, big.byteLen())
}

func TestLeafTextClone(t *testing.T) {
	l := newLeafText([]byte("abc"))
	c := l.clone()
	c.insertAt(1, []byte("X"))
	assert.Equal(t, "abc", string(l.bytes()))
	assert.Equal(t, "aXbc", string(c.bytes()))
}

func TestLeafTextInsertAt(t *testing.T) {
	l := newLeafText([]byte("hello world"))
	l.insertAt(5, []byte(","))
	assert.Equal(t, "hello, world", string(l.bytes()))

	l.insertAt(l.byteLen(), []byte("!"))
	assert.Equal(t, "hello, world!", string(l.bytes()))
}

func TestLeafTextRemoveRange(t *testing.T) {
	l := newLeafText([]byte("hello, world"))
	l.removeRange(5, 7)
	assert.Equal(t, "helloworld", string(l.bytes()))
}

func TestLeafTextSplitAt(t *testing.T) {
	l := newLeafText([]byte("hello world"))
	right := l.splitAt(5)
	assert.Equal(t, "hello", string(l.bytes()))
	assert.Equal(t, " world", string(right.bytes()))
}

func TestCheckScalarBoundaryPanics(t *testing.T) {
	b := []byte("héllo")
	assert.Panics(t, func() {
		checkScalarBoundary(b, 2) // inside the two-byte 'é'
	})
}

func TestIsScalarBoundary(t *testing.T) {
	b := []byte("héllo")
	assert.True(t, isScalarBoundary(b, 0))
	assert.True(t, isScalarBoundary(b, len(b)))
	assert.False(t, isScalarBoundary(b, 2))
	assert.True(t, isScalarBoundary(b, 3))
}
