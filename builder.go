package rope

// Builder accumulates text and defers building the B-tree until Build is
// called, the same two-phase bulk-load strategy as the teacher's
// bulkLoadIntoLeaves/buildTreeFromLeaves: pack full leaves eagerly as bytes
// arrive, then assemble the leaf sequence into a balanced tree once at the
// end instead of inserting one character at a time.
type Builder struct {
	pending []byte
	infos   []Info
	leaves  []handle
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Write appends p, eagerly cutting off full leaves as they accumulate. It
// always returns len(p), nil (Builder cannot fail to buffer bytes).
func (b *Builder) Write(p []byte) (int, error) {
	b.pending = append(b.pending, p...)
	b.packFullLeaves()
	return len(p), nil
}

// WriteString is Write for a string argument.
func (b *Builder) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// packFullLeaves cuts grapheme-safe maxLeafBytes-sized chunks off the front
// of pending and turns each into its own leaf, until what remains is too
// small to guarantee another full leaf.
func (b *Builder) packFullLeaves() {
	for len(b.pending) > maxLeafBytes {
		cut := prevGraphemeBoundaryAtOrBefore(b.pending, maxLeafBytes)
		if cut == 0 {
			// The first grapheme cluster itself exceeds maxLeafBytes; accept
			// an oversize leaf rather than splitting it (spec section 3,
			// invariant 1(b)).
			cut = nextGraphemeBoundaryAtOrAfter(b.pending, maxLeafBytes)
			if cut == 0 {
				cut = len(b.pending)
			}
		}
		chunk := append([]byte(nil), b.pending[:cut]...)
		h := newHandle(newLeafNode(chunk))
		b.leaves = append(b.leaves, h)
		b.infos = append(b.infos, h.node().info())
		b.pending = append([]byte(nil), b.pending[cut:]...)
	}
}

// Build assembles the buffered text into a Rope and resets the Builder to
// empty. The final partial chunk becomes the last leaf even if it is
// smaller than minLeafBytes, matching the root-leaf exception in spec
// section 3.
func (b *Builder) Build() *Rope {
	if len(b.pending) > 0 || len(b.leaves) == 0 {
		h := newHandle(newLeafNode(b.pending))
		b.leaves = append(b.leaves, h)
		b.infos = append(b.infos, h.node().info())
	}
	root := assembleChildren(1, b.infos, b.leaves)
	b.pending = nil
	b.infos = nil
	b.leaves = nil
	return &Rope{root: root}
}

// buildTreeFromBytes bulk-builds a standalone subtree from b, used by
// Insert to construct the inserted material and by NewFromString to build an
// entire Rope's worth of content in one pass.
func buildTreeFromBytes(b []byte) handle {
	bd := NewBuilder()
	_, _ = bd.Write(b)
	return bd.Build().root
}
