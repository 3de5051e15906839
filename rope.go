package rope

import "unicode/utf8"

// Rope is an immutable-by-default, structurally-shared text buffer backed
// by a B-tree of UTF-8 bytes (spec section 2). The zero value is not valid;
// use New, NewFromString, NewBuilder, or FromReader.
type Rope struct {
	root handle
}

// New returns an empty Rope.
func New() *Rope {
	return &Rope{root: newHandle(newLeafNode(nil))}
}

// NewFromString builds a Rope holding a copy of s.
func NewFromString(s string) *Rope {
	return &Rope{root: buildTreeFromBytes([]byte(s))}
}

// Clone returns a Rope sharing all of r's structure at O(1) cost (spec
// section 5): no bytes are copied, and later edits to either Rope only
// clone the nodes on the path they touch.
func (r *Rope) Clone() *Rope {
	return &Rope{root: r.root.clone()}
}

// info is r's aggregate TextInfo.
func (r *Rope) info() Info {
	return r.root.node().info()
}

// LenBytes returns the byte length of r's content.
func (r *Rope) LenBytes() uint64 { return r.info().Bytes }

// LenChars returns the number of Unicode scalar values in r's content.
func (r *Rope) LenChars() uint64 { return r.info().Chars }

// LenLines returns the number of lines in r's content: the number of
// line-terminator occurrences plus one, so a rope with no terminators has 1
// line.
func (r *Rope) LenLines() uint64 { return r.info().Lines + 1 }

// ByteToChar converts a byte offset to the char index of the scalar
// starting there. A byteIdx beyond LenBytes() returns ErrOutOfBounds; one
// inside a multi-byte scalar returns ErrScalarBoundary (spec section 6/7).
func (r *Rope) ByteToChar(byteIdx uint64) (uint64, error) {
	if byteIdx > r.LenBytes() {
		return 0, ErrOutOfBounds
	}
	if !isByteScalarBoundary(r.root, byteIdx) {
		return 0, ErrScalarBoundary
	}
	return descendByteToChar(r.root, byteIdx), nil
}

// CharToByte converts a char index to its byte offset. charIdx may equal
// LenChars(), returning LenBytes().
func (r *Rope) CharToByte(charIdx uint64) (uint64, error) {
	if charIdx > r.LenChars() {
		return 0, ErrOutOfBounds
	}
	return descendCharToByte(r.root, charIdx), nil
}

// ByteToLine converts a byte offset to the index of the line containing it.
// byteIdx must be a scalar boundary, or ErrScalarBoundary is returned (spec
// section 6/7).
func (r *Rope) ByteToLine(byteIdx uint64) (uint64, error) {
	if byteIdx > r.LenBytes() {
		return 0, ErrOutOfBounds
	}
	if !isByteScalarBoundary(r.root, byteIdx) {
		return 0, ErrScalarBoundary
	}
	return descendByteToLine(r.root, byteIdx), nil
}

// LineToByte converts a line index to the byte offset of its first scalar.
func (r *Rope) LineToByte(lineIdx uint64) (uint64, error) {
	if lineIdx >= r.LenLines() {
		return 0, ErrOutOfBounds
	}
	return descendLineToByte(r.root, lineIdx), nil
}

// CharToLine converts a char index to the index of the line containing it.
func (r *Rope) CharToLine(charIdx uint64) (uint64, error) {
	if charIdx > r.LenChars() {
		return 0, ErrOutOfBounds
	}
	return descendCharToLine(r.root, charIdx), nil
}

// LineToChar converts a line index to the char index of its first scalar.
func (r *Rope) LineToChar(lineIdx uint64) (uint64, error) {
	if lineIdx >= r.LenLines() {
		return 0, ErrOutOfBounds
	}
	return descendLineToChar(r.root, lineIdx), nil
}

// Insert splices text into r at char index charIdx (spec section 4.3's
// edit_char_range defined as remove-nothing-then-insert). charIdx may equal
// LenChars() to append. When r's whole tree is a single leaf with enough
// spare room, this takes the COW mutate-in-place step (handle.go's makeMut)
// directly instead of reconstructing through split+join.
func (r *Rope) Insert(charIdx uint64, text string) error {
	if charIdx > r.LenChars() {
		return ErrOutOfBounds
	}
	if len(text) == 0 {
		return nil
	}
	if nh, ok := tryMutateLeafInsert(r.root, charIdx, []byte(text)); ok {
		r.root = nh
		return nil
	}
	old := r.root
	left, right := split(old, charIdx)
	old.release()
	mid := buildTreeFromBytes([]byte(text))
	r.root = join(join(left, mid), right)
	r.root = collapseUnary(r.root)
	return nil
}

// Remove deletes the char range [start, end) from r (spec section 4.3's
// edit_char_range with empty insert text). When r's whole tree is a single
// leaf, this mutates it in place via makeMut; otherwise it splits the range
// off on both ends and rejoins the remainder.
func (r *Rope) Remove(start, end uint64) error {
	n := r.LenChars()
	if start > end || end > n {
		return ErrOutOfBounds
	}
	if start == end {
		return nil
	}
	if nh, ok := tryMutateLeafRemove(r.root, start, end); ok {
		r.root = nh
		return nil
	}
	old := r.root
	a, b := split(old, start)
	old.release()
	_, c := split(b, end-start)
	b.release()
	r.root = join(a, c)
	r.root = collapseUnary(r.root)
	return nil
}

// Append is Insert at LenChars().
func (r *Rope) Append(text string) error {
	return r.Insert(r.LenChars(), text)
}

// Line returns the content of line n (0-indexed), including its trailing
// line terminator if one is present, matching spec section 6.
func (r *Rope) Line(n uint64) (string, error) {
	if n >= r.LenLines() {
		return "", ErrOutOfBounds
	}
	startC, err := r.LineToChar(n)
	if err != nil {
		return "", err
	}
	var endC uint64
	if n+1 < r.LenLines() {
		endC, err = r.LineToChar(n + 1)
		if err != nil {
			return "", err
		}
	} else {
		endC = r.LenChars()
	}
	return r.Slice(startC, endC).String(), nil
}

// Equal reports whether r and o hold identical byte content, comparing
// chunk by chunk so two differently-shaped trees with the same content
// still compare equal (spec section 5).
func (r *Rope) Equal(o *Rope) bool {
	if r.LenBytes() != o.LenBytes() {
		return false
	}
	ra, rb := r.Chunks(), o.Chunks()
	var abuf, bbuf []byte
	for {
		for len(abuf) == 0 {
			c, ok := ra.Next()
			if !ok {
				return len(bbuf) == 0 && !hasMoreChunks(rb)
			}
			abuf = c
		}
		for len(bbuf) == 0 {
			c, ok := rb.Next()
			if !ok {
				return false
			}
			bbuf = c
		}
		n := len(abuf)
		if len(bbuf) < n {
			n = len(bbuf)
		}
		for i := 0; i < n; i++ {
			if abuf[i] != bbuf[i] {
				return false
			}
		}
		abuf = abuf[n:]
		bbuf = bbuf[n:]
	}
}

func hasMoreChunks(it *ChunkIter) bool {
	c, ok := it.Next()
	return ok && len(c) > 0
}

// String materializes the entire content. Prefer Chunks for large ropes.
func (r *Rope) String() string {
	buf := make([]byte, 0, r.LenBytes())
	it := r.Chunks()
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		buf = append(buf, c...)
	}
	return string(buf)
}

// Slice returns a borrowed view of r's content in [startChar, endChar)
// (spec section 4.3's slice type). The Slice shares structure with r; it
// stays valid independent of further edits to r, since Rope is
// copy-on-write.
func (r *Rope) Slice(startChar, endChar uint64) *Slice {
	if startChar > endChar || endChar > r.LenChars() {
		panic("rope: invalid slice range")
	}
	return &Slice{root: r.root.clone(), startChar: startChar, endChar: endChar}
}

// assertIntegrity walks the tree and panics if info aggregation, the
// maxLeafBytes/maxChildren ceilings, or uniform leaf depth is violated (see
// assertNodeIntegrity); leaf-boundary checks are in assertInvariants. It is
// unexported and exists for tests.
func (r *Rope) assertIntegrity() {
	assertNodeIntegrity(r.root, true)
}

// assertInvariants is assertIntegrity's counterpart for the structural
// invariants that only show up at leaf boundaries rather than within a
// single node: every leaf holds valid UTF-8, no non-root leaf is empty, and
// no adjacent pair of leaves splits a single extended grapheme cluster
// across them (spec section 4.7's diagnostics split between metadata
// accuracy and structural invariants). It is unexported and exists for
// tests.
func (r *Rope) assertInvariants() {
	it := r.Chunks()
	var prev []byte
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if !utf8.Valid(c) {
			panic("rope: leaf contains invalid UTF-8")
		}
		if len(c) == 0 {
			panic("rope: non-root leaf is empty")
		}
		if prev != nil && !graphemeBoundarySafe(prev, c) {
			panic("rope: adjacent leaves split a grapheme cluster")
		}
		prev = append([]byte(nil), c...)
	}
}

// assertNodeIntegrity checks the invariants that split/join maintain
// unconditionally: correct info aggregation, capacity bounds, and uniform
// leaf depth. It does not enforce minLeafBytes/minChildren occupancy on
// every node: like other split+concat rope implementations, a node
// produced at an edit boundary can end up smaller than the target minimum
// without being merged into a neighbor several levels up, so under-capacity
// alone is not treated as corruption (see DESIGN.md).
func assertNodeIntegrity(h handle, isRoot bool) Info {
	n := h.node()
	if n.isLeaf() {
		sz := n.leaf.byteLen()
		if sz > maxLeafBytes && !isSingleGraphemeOverflow(n.leaf.bytes()) {
			panic("rope: leaf overflow without being a single grapheme")
		}
		return n.leaf.info()
	}
	t := &n.internal
	if t.count > maxChildren {
		panic("rope: internal node overflow")
	}
	if t.count == 0 {
		panic("rope: internal node with no children")
	}
	var sum Info
	for i := int32(0); i < t.count; i++ {
		child := t.children[i]
		cn := child.node()
		wantLeaf := n.height == 1
		if cn.isLeaf() != wantLeaf {
			panic("rope: non-uniform leaf depth")
		}
		if !wantLeaf && cn.height != n.height-1 {
			panic("rope: inconsistent child height")
		}
		got := assertNodeIntegrity(child, false)
		if got != t.infos[i] {
			panic("rope: stored info does not match child's true aggregate")
		}
		sum = sum.Add(got)
	}
	return sum
}

func isSingleGraphemeOverflow(b []byte) bool {
	cluster, rest := firstClusterInfo(b)
	return rest == "" && cluster == string(b)
}
