// Package syntax defines the read-only syntax tree contract that lint rules
// consume, and the Provider port that produces those trees.
//
// The lint engine never builds trees itself. A Provider adapter (see
// package treesitter) turns source bytes into a Tree whose nodes expose a
// kind string, a byte range, and their children in document order.
package syntax

// Node is a single syntax tree node. Nodes are immutable once built.
type Node interface {
	// Kind returns the grammar node type, e.g. "call_expression".
	Kind() string

	// Start returns the 0-based byte offset of the node's first byte.
	Start() int

	// End returns the 0-based byte offset just past the node's last byte.
	End() int

	// Children returns the node's children in document order.
	Children() []Node
}

// Tree is a parsed source file.
type Tree struct {
	Path   string
	Source []byte
	Root   Node
}

// Text returns the source text covered by n.
func (t *Tree) Text(n Node) string {
	return Text(t.Source, n)
}

// Text returns the bytes of src covered by n, clamped to src.
func Text(src []byte, n Node) string {
	start, end := n.Start(), n.End()
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return string(src[start:end])
}

// Provider parses source text into a Tree.
//
// Implementations must be safe for concurrent use: the runner calls Parse from
// many goroutines at once. A source that cannot be parsed yields a
// *ParseError.
type Provider interface {
	Parse(path string, source []byte) (*Tree, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(path string, source []byte) (*Tree, error)

// Parse calls f(path, source).
func (f ProviderFunc) Parse(path string, source []byte) (*Tree, error) {
	return f(path, source)
}

// BasicNode is a plain Node implementation. Provider adapters convert their
// native trees into BasicNodes so that trees outlive the parser that made them.
type BasicNode struct {
	kind     string
	start    int
	end      int
	children []Node
}

// NewNode creates a node covering [start, end).
func NewNode(kind string, start, end int, children ...Node) *BasicNode {
	return &BasicNode{kind: kind, start: start, end: end, children: children}
}

func (n *BasicNode) Kind() string     { return n.kind }
func (n *BasicNode) Start() int       { return n.start }
func (n *BasicNode) End() int         { return n.end }
func (n *BasicNode) Children() []Node { return n.children }
