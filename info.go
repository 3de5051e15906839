package rope

import "unicode/utf8"

// Info is the per-subtree summary aggregated from leaves up to the root:
// byte length, scalar (Unicode code point) count, and line-terminator
// count. Every Internal node's i-th stored Info must equal the true
// aggregate of its i-th child's subtree (spec invariant 2); this is the
// single most important invariant in the tree.
type Info struct {
	Bytes uint64
	Chars uint64
	Lines uint64
}

// Add returns the element-wise sum of two Infos.
func (a Info) Add(b Info) Info {
	return Info{
		Bytes: a.Bytes + b.Bytes,
		Chars: a.Chars + b.Chars,
		Lines: a.Lines + b.Lines,
	}
}

// Sub returns a - b. Used when removing a child's contribution from a
// parent's running total; callers must ensure b does not exceed a in any
// field.
func (a Info) Sub(b Info) Info {
	return Info{
		Bytes: a.Bytes - b.Bytes,
		Chars: a.Chars - b.Chars,
		Lines: a.Lines - b.Lines,
	}
}

// infoForBytes computes the Info for a self-contained run of valid UTF-8
// bytes containing no grapheme cluster that continues into a neighboring
// leaf (the caller is responsible for that guarantee).
func infoForBytes(b []byte) Info {
	var info Info
	info.Bytes = uint64(len(b))
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		info.Chars++
		if isLineTerminator(b, i, r, size) {
			info.Lines++
		}
		i += size
	}
	return info
}
