package rope

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// readChunkSize is how much FromReader reads per call to the underlying
// io.Reader before handing the bytes to the Builder.
const readChunkSize = 64 * 1024

// FromReader builds a Rope from r's entire contents (spec section 4.3's
// bulk-load path, grounded on the teacher's NewTreeFromReader). It returns
// ErrInvalidUTF8, wrapped with the byte offset at which the failing read
// chunk begins, if the stream is not valid UTF-8. A scalar split across two reads is buffered
// and completed before being handed to the Builder, so a chunk boundary
// from the underlying reader never corrupts the text.
func FromReader(r io.Reader) (*Rope, error) {
	b := NewBuilder()
	buf := make([]byte, readChunkSize)
	var carry []byte
	var total uint64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(carry) > 0 {
				chunk = append(carry, chunk...)
				carry = nil
			}
			complete, rest, verr := splitTrailingIncompleteRune(chunk)
			if verr != nil {
				return nil, errors.Wrapf(ErrInvalidUTF8, "rope: decoding input at byte offset %d", total)
			}
			if _, werr := b.Write(complete); werr != nil {
				return nil, errors.Wrap(werr, "rope: buffering input")
			}
			total += uint64(len(complete))
			// rest aliases buf, which the next Read overwrites in place; copy
			// it out so the carried partial rune survives to the next pass.
			carry = append([]byte(nil), rest...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "rope: reading input")
		}
	}
	if len(carry) > 0 {
		return nil, errors.Wrapf(ErrInvalidUTF8, "rope: incomplete UTF-8 sequence at byte offset %d", total)
	}
	return b.Build(), nil
}

// splitTrailingIncompleteRune returns b split into a prefix ending on a
// complete, valid rune and a suffix holding a rune that may simply be cut
// short by the read boundary. It reports an error if the bytes decoded so
// far are definitively invalid UTF-8 rather than merely incomplete.
func splitTrailingIncompleteRune(b []byte) (complete, rest []byte, err error) {
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			if len(b)-i <= utf8.UTFMax && !utf8.FullRune(b[i:]) {
				return b[:i], b[i:], nil
			}
			return nil, nil, ErrInvalidUTF8
		}
		i += size
	}
	return b, nil, nil
}

// WriteTo writes r's content to w one chunk at a time, avoiding a full
// materialization of the rope into one contiguous buffer.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var written int64
	it := r.Chunks()
	for {
		c, ok := it.Next()
		if !ok {
			return written, nil
		}
		n, err := w.Write(c)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "rope: writing output")
		}
	}
}
