package rope

import "errors"

// Error kinds surfaced to callers (spec section 7). Internal invariant
// violations are programming errors and panic instead of returning one of
// these.
var (
	// ErrOutOfBounds is returned when an index or range falls outside
	// [0, len] for the relevant unit (bytes, chars, or lines).
	ErrOutOfBounds = errors.New("rope: index out of bounds")

	// ErrScalarBoundary is returned when a byte index used with the byte
	// interface does not fall on a UTF-8 scalar boundary.
	ErrScalarBoundary = errors.New("rope: byte index is not on a scalar boundary")

	// ErrInvalidUTF8 is returned by FromReader when the input bytes are not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("rope: invalid UTF-8")
)
