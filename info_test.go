package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoAddSub(t *testing.T) {
	a := Info{Bytes: 10, Chars: 8, Lines: 2}
	b := Info{Bytes: 3, Chars: 3, Lines: 1}
	assert.Equal(t, Info{Bytes: 13, Chars: 11, Lines: 3}, a.Add(b))
	assert.Equal(t, Info{Bytes: 7, Chars: 5, Lines: 1}, a.Sub(b))
}

func TestInfoForBytes(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Info
	}{
		{name: "empty", input: "", expected: Info{}},
		{name: "ascii no newline", input: "hello", expected: Info{Bytes: 5, Chars: 5, Lines: 0}},
		{name: "lf terminated", input: "abc\n", expected: Info{Bytes: 4, Chars: 4, Lines: 1}},
		{name: "crlf counts once", input: "abc\r\ndef", expected: Info{Bytes: 8, Chars: 8, Lines: 1}},
		{name: "multibyte scalar", input: "héllo", expected: Info{Bytes: 6, Chars: 5, Lines: 0}},
		{name: "two lines", input: "a\nb\n", expected: Info{Bytes: 4, Chars: 4, Lines: 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, infoForBytes([]byte(tc.input)))
		})
	}
}
