package token

import (
	"sort"
	"unicode/utf8"
)

// LineIndex converts byte offsets into line/column positions.
//
// Line starts are computed once per source. Lookups are a binary search, so
// mapping every node of a large file stays cheap. "\n", "\r\n" and a lone
// "\r" each terminate a line; "\r\n" counts as a single break.
//
// A LineIndex is immutable and safe for concurrent use.
type LineIndex struct {
	src    []byte
	starts []int // byte offset of the first byte of each line; starts[0] == 0
}

// NewLineIndex precomputes the line starts of src.
func NewLineIndex(src []byte) *LineIndex {
	starts := make([]int, 1, 64)
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// LineCount returns the number of lines in the source. An empty source has
// one (empty) line.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Position returns the 1-based position of offset. Offsets outside the source
// are clamped to its bounds.
func (x *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.src) {
		offset = len(x.src)
	}

	// Last line whose start is <= offset.
	line := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1

	start := x.starts[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCount(x.src[start:offset]) + 1,
		Offset: offset,
	}
}

// LineStart returns the byte offset where the given 1-based line begins, or
// -1 if the line does not exist.
func (x *LineIndex) LineStart(line int) int {
	if line < 1 || line > len(x.starts) {
		return -1
	}
	return x.starts[line-1]
}
