// Package treesitter implements syntax.Provider for TypeScript and TSX using
// tree-sitter grammars.
package treesitter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/leapstack-labs/leapgate/pkg/syntax"
	"github.com/leapstack-labs/leapgate/pkg/token"
)

// Provider parses TypeScript sources. The grammar is chosen by file
// extension: ".tsx" uses the TSX grammar, everything else plain TypeScript.
//
// A tree-sitter parser is not safe for concurrent use, so each Parse call
// gets its own. The returned tree is converted to syntax.BasicNode values and
// holds no reference to tree-sitter memory.
type Provider struct {
	ts  *sitter.Language
	tsx *sitter.Language
}

// New creates a TypeScript provider.
func New() *Provider {
	return &Provider{
		ts:  typescript.GetLanguage(),
		tsx: tsx.GetLanguage(),
	}
}

// SupportsExtension reports whether files with ext can be parsed.
// The extension includes the leading dot.
func (p *Provider) SupportsExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

// Parse implements syntax.Provider.
func (p *Provider) Parse(path string, source []byte) (*syntax.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.languageFor(path))

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &syntax.ParseError{Path: path, Message: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &syntax.ParseError{Path: path, Message: "empty syntax tree"}
	}
	if root.HasError() {
		return nil, parseError(path, source, root)
	}

	return &syntax.Tree{
		Path:   path,
		Source: source,
		Root:   convert(root),
	}, nil
}

func (p *Provider) languageFor(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return p.tsx
	}
	return p.ts
}

// convert copies the named nodes of a tree-sitter subtree.
func convert(n *sitter.Node) syntax.Node {
	count := int(n.NamedChildCount())
	var children []syntax.Node
	if count > 0 {
		children = make([]syntax.Node, 0, count)
		for i := 0; i < count; i++ {
			if child := n.NamedChild(i); child != nil {
				children = append(children, convert(child))
			}
		}
	}
	return syntax.NewNode(n.Type(), int(n.StartByte()), int(n.EndByte()), children...)
}

// parseError locates the first ERROR or MISSING node in document order.
func parseError(path string, source []byte, root *sitter.Node) *syntax.ParseError {
	bad := firstError(root)
	if bad == nil {
		return &syntax.ParseError{Path: path, Message: "syntax error"}
	}

	idx := token.NewLineIndex(source)
	pos := idx.Position(int(bad.StartByte()))
	msg := "unexpected input"
	if bad.IsMissing() {
		msg = fmt.Sprintf("missing %s", bad.Type())
	} else if text := strings.TrimSpace(bad.Content(source)); text != "" {
		msg = fmt.Sprintf("unexpected %q", truncate(text, 32))
	}

	return &syntax.ParseError{
		Path:    path,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: msg,
		Excerpt: lineText(idx, source, pos.Line),
	}
}

// lineText returns the text of a 1-based line without its terminator.
func lineText(idx *token.LineIndex, source []byte, line int) string {
	start := idx.LineStart(line)
	if start < 0 {
		return ""
	}
	end := len(source)
	if line < idx.LineCount() {
		end = idx.LineStart(line + 1)
	}
	return strings.TrimRight(string(source[start:end]), "\r\n")
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil {
			if bad := firstError(child); bad != nil {
				return bad
			}
		}
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
