package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// program
// ├── a
// │   ├── a1
// │   └── a2
// └── b
func sampleTree() Node {
	return NewNode("program", 0, 10,
		NewNode("a", 0, 5,
			NewNode("a1", 0, 2),
			NewNode("a2", 3, 5),
		),
		NewNode("b", 6, 10),
	)
}

func TestWalk_PreOrder(t *testing.T) {
	var kinds []string
	Walk(sampleTree(), func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []string{"program", "a", "a1", "a2", "b"}, kinds)
}

func TestWalk_SkipChildren(t *testing.T) {
	var kinds []string
	Walk(sampleTree(), func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != "a"
	})

	assert.Equal(t, []string{"program", "a", "b"}, kinds)
}

func TestWalk_Nil(t *testing.T) {
	called := false
	Walk(nil, func(Node) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestFind(t *testing.T) {
	found := Find(sampleTree(), "b", "a1")
	require.Len(t, found, 2)
	assert.Equal(t, "a1", found[0].Kind())
	assert.Equal(t, "b", found[1].Kind())
}

func TestText(t *testing.T) {
	src := []byte("eval(code)")
	tree := &Tree{Source: src, Root: NewNode("program", 0, len(src))}

	assert.Equal(t, "eval", tree.Text(NewNode("identifier", 0, 4)))
	assert.Equal(t, "", Text(src, NewNode("empty", 4, 4)))
	assert.Equal(t, "(code)", Text(src, NewNode("clamped", 4, 99)))
}

func TestProviderFunc(t *testing.T) {
	want := errors.New("boom")
	p := ProviderFunc(func(path string, _ []byte) (*Tree, error) {
		return nil, want
	})

	_, err := p.Parse("x.ts", nil)
	assert.ErrorIs(t, err, want)
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Path: "a.ts", Line: 2, Column: 5, Message: "unexpected token"}
	assert.Equal(t, "a.ts:2:5: parse error: unexpected token", err.Error())

	err = &ParseError{Path: "a.ts", Message: "empty tree"}
	assert.Equal(t, "a.ts: parse error: empty tree", err.Error())
}
