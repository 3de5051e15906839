package rope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextGraphemeBoundaryAtOrAfterCRLF(t *testing.T) {
	b := []byte("a\r\nb")
	// A cut requested inside the CRLF pair (between CR and LF) must move
	// forward to after the LF.
	assert.Equal(t, 3, nextGraphemeBoundaryAtOrAfter(b, 2))
	assert.Equal(t, 1, nextGraphemeBoundaryAtOrAfter(b, 1))
}

func TestPrevGraphemeBoundaryAtOrBeforeCRLF(t *testing.T) {
	b := []byte("a\r\nb")
	assert.Equal(t, 1, prevGraphemeBoundaryAtOrBefore(b, 2))
	assert.Equal(t, 3, prevGraphemeBoundaryAtOrBefore(b, 3))
}

func TestGraphemeBoundarySafe(t *testing.T) {
	assert.True(t, graphemeBoundarySafe([]byte("abc"), []byte("def")))
	assert.False(t, graphemeBoundarySafe([]byte("a\r"), []byte("\nb")))
}

func TestChooseLeafSplitPointAvoidsCRLF(t *testing.T) {
	b := []byte("aaaa\r\nbbbb")
	cut, ok := chooseLeafSplitPoint(b)
	assert.True(t, ok)
	assert.True(t, graphemeBoundarySafe(b[:cut], b[cut:]))
}

func TestChooseLeafSplitPointUnsplittableCluster(t *testing.T) {
	// A single extended grapheme cluster built from a base rune plus many
	// combining marks cannot be split.
	b := []byte("e" + strings.Repeat("́", 40))
	_, ok := chooseLeafSplitPoint(b)
	assert.False(t, ok)
}
