package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex_Position(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{"offset zero", "const x = 1;", 0, 1, 1},
		{"empty source", "", 0, 1, 1},
		{"first line", "const x: any = 1;", 9, 1, 10},
		{"start of second line", "a\nb", 2, 2, 1},
		{"newline byte belongs to its line", "ab\ncd", 2, 1, 3},
		{"third line", "l1\nl2\nconst c: any = 3;\nl4\n", 15, 3, 10},
		{"crlf is one break", "a\r\nb\r\nc", 6, 3, 1},
		{"lone cr", "a\rb\rc", 4, 3, 1},
		{"mixed endings", "a\nb\r\nc\rd", 7, 4, 1},
		{"multibyte columns count runes", "é = x", 3, 1, 3},
		{"past end clamps", "abc", 99, 1, 4},
		{"negative clamps", "abc", -5, 1, 1},
		{"trailing newline", "abc\n", 4, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewLineIndex([]byte(tt.src))
			pos := idx.Position(tt.offset)
			assert.Equal(t, tt.wantLine, pos.Line, "line")
			assert.Equal(t, tt.wantColumn, pos.Column, "column")
		})
	}
}

func TestLineIndex_LineStart(t *testing.T) {
	idx := NewLineIndex([]byte("one\r\ntwo\nthree"))

	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, 0, idx.LineStart(1))
	assert.Equal(t, 5, idx.LineStart(2))
	assert.Equal(t, 9, idx.LineStart(3))
	assert.Equal(t, -1, idx.LineStart(0))
	assert.Equal(t, -1, idx.LineStart(4))
}

func TestLineIndex_Deterministic(t *testing.T) {
	src := []byte("a\nbb\nccc\n")
	a := NewLineIndex(src)
	b := NewLineIndex(src)
	for off := 0; off <= len(src); off++ {
		assert.Equal(t, a.Position(off), b.Position(off))
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "-", Position{}.String())
}
