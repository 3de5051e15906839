package rope

import "sync/atomic"

// nodeBox is the atomically-refcounted cell a handle points to. Its strong
// count is the number of handle values currently claiming ownership of it
// across every Rope, Slice, and parent child-table slot in the program.
type nodeBox struct {
	refs atomic.Int32
	n    node
}

// handle is SharedHandle from spec section 3/9: a reference-counted,
// atomically-cloneable wrapper around a node granting structural sharing.
// A zero handle is invalid; use newHandle.
type handle struct {
	box *nodeBox
}

// newHandle wraps n in a freshly-owned box with strong count 1. The caller
// is transferring sole ownership of n to the returned handle; no other
// handle should be constructed around the same node value.
func newHandle(n node) handle {
	b := &nodeBox{n: n}
	b.refs.Store(1)
	return handle{box: b}
}

// clone returns a new handle value sharing h's box, incrementing the strong
// count. Call this whenever a handle is being duplicated into a second
// owning location (a cloned Rope's root, a COW-shared child slot).
func (h handle) clone() handle {
	h.box.refs.Add(1)
	return h
}

// release decrements the strong count, relinquishing this copy's claim of
// ownership. Call this whenever a handle stored in some slot is discarded
// (overwritten, removed) rather than moved. Go's garbage collector reclaims
// the underlying memory once truly unreachable regardless of this count;
// the count exists so copy-on-write decisions and strongCount() observe
// logical sharing, per spec section 5.
func (h handle) release() {
	h.box.refs.Add(-1)
}

// strongCount returns the current strong reference count.
func (h handle) strongCount() int32 {
	return h.box.refs.Load()
}

// node returns a read-only view of the pointed-to node. Callers must not
// mutate fields reached through this pointer; use makeMut for that.
func (h handle) node() *node {
	return &h.box.n
}

// makeMut is the COW step (spec section 4.3): it ensures the node behind h
// has strong count 1, performing a shallow clone-for-write if some other
// handle also shares the box, and returns the (possibly new) handle to
// install in the caller's slot along with a mutable pointer to its node.
func (h handle) makeMut() (handle, *node) {
	if h.box.refs.Load() == 1 {
		return h, &h.box.n
	}
	cloned := h.box.n.shallowClone()
	h.release()
	nh := newHandle(cloned)
	return nh, &nh.box.n
}
