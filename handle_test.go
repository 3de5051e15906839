package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCloneBumpsStrongCount(t *testing.T) {
	h := newHandle(newLeafNode([]byte("abc")))
	require.Equal(t, int32(1), h.strongCount())

	c := h.clone()
	assert.Equal(t, int32(2), h.strongCount())
	assert.Equal(t, int32(2), c.strongCount())

	c.release()
	assert.Equal(t, int32(1), h.strongCount())
}

func TestMakeMutClonesWhenShared(t *testing.T) {
	h := newHandle(newLeafNode([]byte("abc")))
	shared := h.clone()

	mutated, n := h.makeMut()
	n.leaf.setBytes([]byte("xyz"))

	assert.Equal(t, "xyz", string(mutated.node().leaf.bytes()))
	assert.Equal(t, "abc", string(shared.node().leaf.bytes()))
	assert.Equal(t, int32(1), shared.strongCount())
	assert.Equal(t, int32(1), mutated.strongCount())
}

func TestMakeMutReusesWhenUnique(t *testing.T) {
	h := newHandle(newLeafNode([]byte("abc")))
	mutated, n := h.makeMut()
	assert.Equal(t, h.box, mutated.box)
	n.leaf.setBytes([]byte("zzz"))
	assert.Equal(t, "zzz", string(mutated.node().leaf.bytes()))
}
