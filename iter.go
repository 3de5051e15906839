package rope

import "unicode/utf8"

// iterFrame is one level of the path from the tree root down to the leaf
// currently being visited, grounded on the teacher's Cursor{group, nodeIdx}
// descent: idx is the index of the child currently selected within the
// node's childTable (unused once h is itself a leaf).
type iterFrame struct {
	h   handle
	idx int32
}

// ChunkIter yields a Rope or Slice's content as a sequence of leaf-sized
// []byte chunks, left to right. It is the base that Bytes, Chars, and Lines
// are built on (spec section 4.3's read-iterator requirement).
type ChunkIter struct {
	stack    []iterFrame
	pos      uint64
	endByte  uint64
	leafSkip int
}

func newChunkIter(root handle, startByte, endByte uint64) *ChunkIter {
	it := &ChunkIter{pos: startByte, endByte: endByte}
	it.leafSkip = it.descendTo(root, startByte)
	return it
}

func (it *ChunkIter) descendTo(h handle, targetByte uint64) int {
	n := h.node()
	if n.isLeaf() {
		it.stack = append(it.stack, iterFrame{h: h})
		return int(targetByte)
	}
	t := &n.internal
	idx, off := t.locateByBytes(targetByte)
	it.stack = append(it.stack, iterFrame{h: h, idx: int32(idx)})
	return it.descendTo(t.children[idx], off)
}

func (it *ChunkIter) pushLeftmost(h handle) {
	cur := h
	for {
		n := cur.node()
		if n.isLeaf() {
			it.stack = append(it.stack, iterFrame{h: cur})
			return
		}
		it.stack = append(it.stack, iterFrame{h: cur, idx: 0})
		cur = n.internal.children[0]
	}
}

// advance drops the exhausted leaf frame and moves to the next leaf to its
// right, returning false once the traversal is exhausted.
func (it *ChunkIter) advance() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		n := top.h.node()
		if n.isLeaf() {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		top.idx++
		if top.idx >= n.internal.count {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		it.pushLeftmost(n.internal.children[top.idx])
		return true
	}
	return false
}

// Next returns the next chunk, or ok=false when the iterator is exhausted.
// The returned slice must not be retained past the next Next call.
func (it *ChunkIter) Next() ([]byte, bool) {
	if it.pos >= it.endByte || len(it.stack) == 0 {
		return nil, false
	}
	n := it.stack[len(it.stack)-1].h.node()
	b := n.leaf.bytes()
	start := it.leafSkip
	it.leafSkip = 0
	end := len(b)
	if remaining := it.endByte - it.pos; uint64(end-start) > remaining {
		end = start + int(remaining)
	}
	chunk := b[start:end]
	it.pos += uint64(len(chunk))
	if end >= len(b) {
		it.advance()
	}
	return chunk, true
}

// ByteIter yields individual bytes, built atop ChunkIter.
type ByteIter struct {
	ci  *ChunkIter
	cur []byte
}

func (it *ByteIter) Next() (byte, bool) {
	for len(it.cur) == 0 {
		c, ok := it.ci.Next()
		if !ok {
			return 0, false
		}
		it.cur = c
	}
	b := it.cur[0]
	it.cur = it.cur[1:]
	return b, true
}

// CharIter yields Unicode scalar values. Every chunk boundary ChunkIter
// produces is already a scalar boundary (leaves only ever split on one, and
// char-index-derived start/end offsets are scalar boundaries too), so runes
// never straddle two chunks and no cross-chunk buffering is needed.
type CharIter struct {
	ci  *ChunkIter
	cur []byte
}

func (it *CharIter) Next() (rune, bool) {
	for len(it.cur) == 0 {
		c, ok := it.ci.Next()
		if !ok {
			return 0, false
		}
		it.cur = c
	}
	r, size := utf8.DecodeRune(it.cur)
	it.cur = it.cur[size:]
	return r, true
}

// lineSource is satisfied by Rope and Slice, letting LineIter work over
// either without duplicating its bookkeeping.
type lineSource interface {
	LenLines() uint64
	Line(n uint64) (string, error)
}

// LineIter yields whole lines (each including its trailing terminator, if
// any) in order, grounded on spec section 6's line definition.
type LineIter struct {
	src lineSource
	n   uint64
	max uint64
}

func newLineIter(src lineSource) *LineIter {
	return &LineIter{src: src, max: src.LenLines()}
}

func (it *LineIter) Next() (string, bool) {
	if it.n >= it.max {
		return "", false
	}
	s, err := it.src.Line(it.n)
	if err != nil {
		return "", false
	}
	it.n++
	return s, true
}

// Chunks returns a left-to-right iterator over r's content.
func (r *Rope) Chunks() *ChunkIter {
	return newChunkIter(r.root, 0, r.LenBytes())
}

// Bytes returns a left-to-right byte iterator over r's content.
func (r *Rope) Bytes() *ByteIter {
	return &ByteIter{ci: r.Chunks()}
}

// Chars returns a left-to-right rune iterator over r's content.
func (r *Rope) Chars() *CharIter {
	return &CharIter{ci: r.Chunks()}
}

// Lines returns a left-to-right iterator over r's lines.
func (r *Rope) Lines() *LineIter {
	return newLineIter(r)
}
