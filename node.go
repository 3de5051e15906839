package rope

// nodeKind tags the two node variants (spec section 3).
type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindInternal
)

// node is the tagged union {Leaf, Internal} from spec section 3. Go has no
// C-style overlapping-memory union, so both the leaf and internal payloads
// are present as struct fields and selected by kind; see DESIGN.md for why
// this approximation was accepted rather than forcing an interface (which
// would cost an extra allocation and indirection per node, defeating the
// "same size class, allocator-friendly" goal spec section 9 asks for).
type node struct {
	kind     nodeKind
	height   uint8 // 0 for a leaf; a parent's height is always child height + 1
	leaf     leafText
	internal childTable
}

func newLeafNode(b []byte) node {
	return node{kind: kindLeaf, leaf: newLeafText(b)}
}

func newInternalNode(height uint8, t childTable) node {
	return node{kind: kindInternal, height: height, internal: t}
}

func (n *node) isLeaf() bool { return n.kind == kindLeaf }

// info computes this node's TextInfo: the leaf's own info, or the sum of
// its children's stored infos (spec invariant 2).
func (n *node) info() Info {
	if n.isLeaf() {
		return n.leaf.info()
	}
	return n.internal.total()
}

// shallowClone is the payload of the COW step (spec section 4.3): a leaf is
// deep-copied (it owns its bytes outright), an internal node's parallel
// arrays are copied and each child handle is cloned so the clone and the
// original share subtrees until one of them is itself mutated.
func (n node) shallowClone() node {
	if n.isLeaf() {
		return node{kind: kindLeaf, leaf: n.leaf.clone()}
	}
	return node{kind: kindInternal, height: n.height, internal: n.internal.clone()}
}

// ---- read-only index translation descent (spec section 4.3, "Descent by index") ----

func descendByteToChar(h handle, byteIdx uint64) uint64 {
	n := h.node()
	if n.isLeaf() {
		return charIndexForByte(n.leaf.bytes(), int(byteIdx))
	}
	t := &n.internal
	idx, off := t.locateByBytes(byteIdx)
	var charsBefore uint64
	for i := 0; i < idx; i++ {
		charsBefore += t.infos[i].Chars
	}
	return charsBefore + descendByteToChar(t.children[idx], off)
}

func descendCharToByte(h handle, charIdx uint64) uint64 {
	n := h.node()
	if n.isLeaf() {
		return uint64(byteOffsetForChar(n.leaf.bytes(), charIdx))
	}
	t := &n.internal
	idx, off := t.locateByChars(charIdx)
	var bytesBefore uint64
	for i := 0; i < idx; i++ {
		bytesBefore += t.infos[i].Bytes
	}
	return bytesBefore + descendCharToByte(t.children[idx], off)
}

func descendByteToLine(h handle, byteIdx uint64) uint64 {
	n := h.node()
	if n.isLeaf() {
		return lineIndexForByte(n.leaf.bytes(), int(byteIdx))
	}
	t := &n.internal
	idx, off := t.locateByBytes(byteIdx)
	var linesBefore uint64
	for i := 0; i < idx; i++ {
		linesBefore += t.infos[i].Lines
	}
	return linesBefore + descendByteToLine(t.children[idx], off)
}

func descendLineToByte(h handle, lineIdx uint64) uint64 {
	n := h.node()
	if n.isLeaf() {
		return uint64(byteOffsetForLine(n.leaf.bytes(), lineIdx))
	}
	t := &n.internal
	idx, off := t.locateByLines(lineIdx)
	var bytesBefore uint64
	for i := 0; i < idx; i++ {
		bytesBefore += t.infos[i].Bytes
	}
	return bytesBefore + descendLineToByte(t.children[idx], off)
}

// isByteScalarBoundary reports whether byteIdx falls on a UTF-8 scalar
// boundary of the subtree behind h (spec section 6/7: byte_to_char and
// byte_to_line must fail rather than silently truncate a multi-byte scalar).
func isByteScalarBoundary(h handle, byteIdx uint64) bool {
	n := h.node()
	if n.isLeaf() {
		return isScalarBoundary(n.leaf.bytes(), int(byteIdx))
	}
	t := &n.internal
	idx, off := t.locateByBytes(byteIdx)
	return isByteScalarBoundary(t.children[idx], off)
}

func descendCharToLine(h handle, charIdx uint64) uint64 {
	return descendByteToLine(h, descendCharToByte(h, charIdx))
}

func descendLineToChar(h handle, lineIdx uint64) uint64 {
	return descendByteToChar(h, descendLineToByte(h, lineIdx))
}

// ---- split / join editing primitives (spec section 4.3) ----

// cloneHandles returns a slice of cloned (refcount-bumped) copies of hs, for
// use when a subtree is borrowed into a newly assembled structure while the
// original tree containing hs remains intact.
func cloneHandles(hs []handle) []handle {
	out := make([]handle, len(hs))
	for i, h := range hs {
		out[i] = h.clone()
	}
	return out
}

// assembleChildren builds a single subtree directly over a flat list of
// same-height children, where height is the height to assign to the nodes
// built as their immediate parents (one more than the children's own
// height). It groups the children into chunks of at most maxChildren and
// repeats until one node remains -- the same bottom-up grouping the
// teacher's buildTreeFromLeaves uses to bulk-build a tree. The result may be
// taller than height if more than maxChildren children were supplied.
func assembleChildren(height uint8, infos []Info, children []handle) handle {
	if len(children) == 0 {
		return newHandle(newLeafNode(nil))
	}
	if len(children) == 1 {
		return children[0]
	}

	curInfos, curChildren, curHeight := infos, children, height
	for len(curChildren) > 1 {
		groups := (len(curChildren) + maxChildren - 1) / maxChildren
		nextInfos := make([]Info, 0, groups)
		nextChildren := make([]handle, 0, groups)
		for g := 0; g < groups; g++ {
			s := g * maxChildren
			e := s + maxChildren
			if e > len(curChildren) {
				e = len(curChildren)
			}
			var t childTable
			t.count = int32(e - s)
			copy(t.infos[:], curInfos[s:e])
			copy(t.children[:], curChildren[s:e])
			h := newHandle(newInternalNode(curHeight, t))
			nextInfos = append(nextInfos, t.total())
			nextChildren = append(nextChildren, h)
		}
		curInfos, curChildren = nextInfos, nextChildren
		curHeight++
	}
	return curChildren[0]
}

// split divides the subtree behind h at character index charIdx into two
// independent subtrees whose content concatenates back to the original
// (spec section 4.3's split(at_char)). h is left untouched: split only
// reads it, cloning whichever child handles it borrows into the two
// results, so h remains valid and fully shared with its owner. The results
// may be deficient (below MIN); callers glue them back together with join.
func split(h handle, charIdx uint64) (handle, handle) {
	n := h.node()
	if n.isLeaf() {
		bi := byteOffsetForChar(n.leaf.bytes(), charIdx)
		bi = nextGraphemeBoundaryAtOrAfter(n.leaf.bytes(), bi)
		left := n.leaf.clone()
		right := left.splitAt(bi)
		return newHandle(node{kind: kindLeaf, leaf: left}), newHandle(node{kind: kindLeaf, leaf: right})
	}

	t := &n.internal
	idx, off := t.locateByChars(charIdx)
	info := t.infos[idx]

	if off == 0 {
		left := assembleChildren(n.height, t.infos[:idx], cloneHandles(t.children[:idx]))
		right := assembleChildren(n.height, t.infos[idx:t.count], cloneHandles(t.children[idx:t.count]))
		return left, right
	}
	if off == info.Chars {
		left := assembleChildren(n.height, t.infos[:idx+1], cloneHandles(t.children[:idx+1]))
		right := assembleChildren(n.height, t.infos[idx+1:t.count], cloneHandles(t.children[idx+1:t.count]))
		return left, right
	}

	leftSub, rightSub := split(t.children[idx], off)

	// t.children[:idx] and t.children[idx+1:t.count] are all genuinely at
	// height n.height-1, so grouping them directly is safe; leftSub/rightSub
	// may have collapsed to a shorter height (split's single-child cases
	// return the lone child unwrapped), so they are glued on with join,
	// which equalizes height by wrapping the shorter side rather than
	// assuming both sides already match.
	leftGroup := assembleChildren(n.height, t.infos[:idx], cloneHandles(t.children[:idx]))
	left := join(leftGroup, leftSub)

	rightGroup := assembleChildren(n.height, t.infos[idx+1:t.count], cloneHandles(t.children[idx+1:t.count]))
	right := join(rightSub, rightGroup)

	return left, right
}

// tryMutateLeafInsert takes handle.go's makeMut COW step directly instead of
// reconstructing through split/join (spec section 4.3/9 invariant 7): when h
// is itself a single leaf with enough spare room for text, it claims (cloning
// only if some other handle shares h's box) and splices text in place. It
// reports whether the edit was applied; on false, h is left completely
// untouched so the caller can fall back to split+join.
func tryMutateLeafInsert(h handle, charIdx uint64, text []byte) (handle, bool) {
	n := h.node()
	if !n.isLeaf() || n.leaf.byteLen()+len(text) > maxLeafBytes {
		return h, false
	}
	nh, mn := h.makeMut()
	bi := byteOffsetForChar(mn.leaf.bytes(), charIdx)
	mn.leaf.insertAt(bi, text)
	return nh, true
}

// tryMutateLeafRemove is tryMutateLeafInsert's counterpart for Remove.
func tryMutateLeafRemove(h handle, startChar, endChar uint64) (handle, bool) {
	n := h.node()
	if !n.isLeaf() {
		return h, false
	}
	nh, mn := h.makeMut()
	b := mn.leaf.bytes()
	bs := byteOffsetForChar(b, startChar)
	be := byteOffsetForChar(b, endChar)
	mn.leaf.removeRange(bs, be)
	return nh, true
}

// takeChildren extracts an Internal node's children for reuse in a new
// structure, discarding h. If h is uniquely owned the children are moved
// out directly (no extra bump); if h is shared, each child handle is cloned
// first so the still-extant other owner of h keeps its own valid reference.
func takeChildren(h handle) ([]Info, []handle) {
	n := h.node()
	infos := append([]Info{}, n.internal.infos[:n.internal.count]...)
	var children []handle
	if h.strongCount() == 1 {
		children = append([]handle{}, n.internal.children[:n.internal.count]...)
	} else {
		children = cloneHandles(n.internal.children[:n.internal.count])
	}
	h.release()
	return infos, children
}

// wrapSingleton builds a one-child internal node one level taller than h,
// used by join to equalize the height of its two arguments.
func wrapSingleton(h handle) handle {
	n := h.node()
	var t childTable
	t.pushBack(n.info(), h)
	return newHandle(newInternalNode(n.height+1, t))
}

// joinLeaves concatenates two leaves, splitting the result at a
// grapheme-safe point if it overflows maxLeafBytes (spec section 4.3's
// overflow handling, grounded on dshills-keystorm's concatLeaves).
func joinLeaves(left, right handle) handle {
	lb := left.node().leaf
	rb := right.node().leaf.bytes()

	if lb.byteLen()+len(rb) <= maxLeafBytes {
		merged := lb.clone()
		merged.insertAt(merged.byteLen(), rb)
		left.release()
		right.release()
		return newHandle(node{kind: kindLeaf, leaf: merged})
	}

	combined := make([]byte, 0, lb.byteLen()+len(rb))
	combined = append(combined, lb.bytes()...)
	combined = append(combined, rb...)
	left.release()
	right.release()

	cut, ok := chooseLeafSplitPoint(combined)
	if !ok {
		return newHandle(newLeafNode(combined))
	}
	l := newHandle(newLeafNode(combined[:cut]))
	r := newHandle(newLeafNode(combined[cut:]))
	var t childTable
	t.pushBack(l.node().info(), l)
	t.pushBack(r.node().info(), r)
	return newHandle(newInternalNode(1, t))
}

// join concatenates two subtrees into one, equalizing height by wrapping
// the shorter side and then merging children at the common height,
// splitting the merged child list into multiple parents if it overflows
// maxChildren. This is prepend_at_depth/append_at_depth from spec section
// 4.3: gluing subtree onto the left or right end of a receiver is exactly
// join(subtree, receiver) or join(receiver, subtree), since join already
// infers and reconciles any depth mismatch instead of requiring the caller
// to name a target depth explicitly (see DESIGN.md's Open Question note).
// join takes ownership of both arguments; callers must not use them again.
func join(left, right handle) handle {
	ln, rn := left.node(), right.node()

	if ln.isLeaf() && ln.leaf.byteLen() == 0 {
		left.release()
		return right
	}
	if rn.isLeaf() && rn.leaf.byteLen() == 0 {
		right.release()
		return left
	}
	if ln.isLeaf() && rn.isLeaf() {
		return joinLeaves(left, right)
	}

	l, r := left, right
	for l.node().height < r.node().height {
		l = wrapSingleton(l)
	}
	for r.node().height < l.node().height {
		r = wrapSingleton(r)
	}

	height := l.node().height
	linfos, lchildren := takeChildren(l)
	rinfos, rchildren := takeChildren(r)

	allInfos := append(linfos, rinfos...)
	allChildren := append(lchildren, rchildren...)

	if len(allChildren) <= maxChildren {
		var t childTable
		t.count = int32(len(allChildren))
		copy(t.infos[:], allInfos)
		copy(t.children[:], allChildren)
		return newHandle(newInternalNode(height, t))
	}
	return assembleChildren(height, allInfos, allChildren)
}

// prependAtDepth splices subtree onto the left end of h (spec section 4.3).
func prependAtDepth(h handle, subtree handle) handle {
	return join(subtree, h)
}

// appendAtDepth splices subtree onto the right end of h (spec section 4.3).
func appendAtDepth(h handle, subtree handle) handle {
	return join(h, subtree)
}

// collapseUnary repeatedly replaces a root that is an internal node with
// exactly one child by that child, restoring uniform leaf depth after a
// merge has emptied out a level (spec section 4.3's root-demotion rule).
func collapseUnary(h handle) handle {
	for {
		n := h.node()
		if n.isLeaf() || n.internal.count != 1 {
			return h
		}
		_, only := takeChildren(h)
		h = only[0]
	}
}
