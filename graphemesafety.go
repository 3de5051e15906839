package rope

import "github.com/rivo/uniseg"

// nextGraphemeBoundaryAtOrAfter returns the smallest extended grapheme
// cluster boundary in b that is >= bi. bi must already be a UTF-8 scalar
// boundary. This generalizes spec section 3's mandatory CRLF rule ("CR and
// LF that together form a CRLF must live in the same leaf") to any
// multi-scalar grapheme cluster uniseg recognizes, per the Open Question in
// spec section 9.
//
// Pushing the boundary forward (rather than backward) implements "prefer
// the left": a cluster straddling bi is pulled whole into the left side.
func nextGraphemeBoundaryAtOrAfter(b []byte, bi int) int {
	if bi <= 0 || bi >= len(b) {
		return bi
	}
	pos := 0
	state := -1
	for pos < len(b) {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(string(b[pos:]), state)
		if cluster == "" {
			break
		}
		end := pos + len(cluster)
		if end >= bi {
			return end
		}
		pos = end
		state = newState
	}
	return bi
}

// graphemeBoundarySafe reports whether the boundary between the end of left
// and the start of right is an extended grapheme cluster boundary: it
// returns false when the boundary splits a single cluster (e.g. a CRLF pair
// with the CR at the end of left and the LF at the start of right). Only
// the last 32 bytes of left and the first 32 bytes of right are examined.
// Rope.assertInvariants uses it to check each pair of adjacent leaves.
func graphemeBoundarySafe(left, right []byte) bool {
	const window = 32
	l := left
	if len(l) > window {
		l = l[len(l)-window:]
	}
	r := right
	if len(r) > window {
		r = r[:window]
	}
	combined := string(l) + string(r)
	boundary := len(l)
	pos := 0
	state := -1
	for pos < boundary {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(combined[pos:], state)
		if cluster == "" {
			break
		}
		if pos+len(cluster) > boundary {
			return false
		}
		pos += len(cluster)
		state = newState
	}
	return true
}

// prevGraphemeBoundaryAtOrBefore returns the largest extended grapheme
// cluster boundary in b that is <= bi. Used when chunking a byte stream into
// leaves of at most maxLeafBytes: the cut must not move past bi (or the
// chunk would overflow), so it is found by scanning forward and keeping the
// last boundary seen before bi.
func prevGraphemeBoundaryAtOrBefore(b []byte, bi int) int {
	if bi <= 0 {
		return 0
	}
	if bi >= len(b) {
		return len(b)
	}
	pos := 0
	last := 0
	state := -1
	for pos < len(b) {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(string(b[pos:]), state)
		if cluster == "" {
			break
		}
		end := pos + len(cluster)
		if end > bi {
			break
		}
		last = end
		pos = end
		state = newState
	}
	return last
}

// firstClusterInfo returns b's first extended grapheme cluster and the
// remainder of b after it, for checking whether b is exactly one cluster.
func firstClusterInfo(b []byte) (cluster string, rest string) {
	c, r, _, _ := uniseg.FirstGraphemeClusterInString(string(b), -1)
	return c, r
}

// chooseLeafSplitPoint picks a grapheme-safe byte offset near the midpoint
// of b to split an overflowing leaf. It returns ok=false only when b is a
// single unsplittable grapheme cluster, in which case the leaf is allowed
// to exceed maxLeafBytes (spec section 3, invariant 1(b)).
func chooseLeafSplitPoint(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, true
	}
	mid := len(b) / 2
	for mid > 0 && !isScalarBoundary(b, mid) {
		mid--
	}
	cut := nextGraphemeBoundaryAtOrAfter(b, mid)
	if cut > 0 && cut < len(b) {
		return cut, true
	}

	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(string(b), -1)
	if rest == "" {
		// The whole leaf is one grapheme cluster: cannot split.
		return 0, false
	}
	return len(cluster), true
}
