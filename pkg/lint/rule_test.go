package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// staticProvider returns the same tree for every source.
func staticProvider(root syntax.Node) syntax.Provider {
	return syntax.ProviderFunc(func(path string, source []byte) (*syntax.Tree, error) {
		return &syntax.Tree{Path: path, Source: source, Root: root}, nil
	})
}

func TestTreeRule_Analyze(t *testing.T) {
	// "let a;\nlet b;" with both identifiers flagged.
	src := []byte("let a;\nlet b;")
	root := syntax.NewNode("program", 0, len(src),
		syntax.NewNode("lexical_declaration", 0, 6, syntax.NewNode("identifier", 4, 5)),
		syntax.NewNode("lexical_declaration", 7, 13, syntax.NewNode("identifier", 11, 12)),
	)

	rule := NewTreeRule(RuleDef{
		Name:     "noLet",
		Severity: SeverityWarning,
		Message:  "identifier found",
		Kinds:    []string{"identifier"},
		Check:    func(syntax.Node, []byte) bool { return true },
	}, staticProvider(root))

	violations, err := rule.Analyze(src, "x.ts")
	require.NoError(t, err)
	require.Len(t, violations, 2)

	assert.Equal(t, Violation{
		RuleName: "noLet", Message: "identifier found", FilePath: "x.ts",
		Line: 1, Column: 5, Severity: SeverityWarning,
	}, violations[0])
	assert.Equal(t, 2, violations[1].Line)
	assert.Equal(t, 5, violations[1].Column)
}

func TestTreeRule_KindsFilter(t *testing.T) {
	var seen []string
	root := syntax.NewNode("program", 0, 3, syntax.NewNode("a", 0, 1), syntax.NewNode("b", 1, 2))
	rule := NewTreeRule(RuleDef{
		Name:  "r",
		Kinds: []string{"b"},
		Check: func(n syntax.Node, _ []byte) bool {
			seen = append(seen, n.Kind())
			return false
		},
	}, staticProvider(root))

	violations, err := rule.Analyze([]byte("abc"), "f.ts")
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, []string{"b"}, seen)
}

func TestTreeRule_Metadata(t *testing.T) {
	rule := NewTreeRule(RuleDef{
		Name:        "noThing",
		Description: "Disallows things",
		Severity:    SeverityWarning,
		Rationale:   "things are bad",
	}, staticProvider(syntax.NewNode("program", 0, 0)))

	info := GetRuleInfo(rule)
	assert.Equal(t, "noThing", info.Name)
	assert.Equal(t, "Disallows things", info.Description)
	assert.Equal(t, SeverityWarning, info.DefaultSeverity)
	assert.Equal(t, "things are bad", info.Rationale)
}

func TestWithSeverity(t *testing.T) {
	base := fixedRule("A", 1, 2)

	same := WithSeverity(base, SeverityError)
	assert.Same(t, base, same)

	warn := WithSeverity(base, SeverityWarning)
	assert.Equal(t, "A", warn.Name())
	assert.Equal(t, SeverityWarning, warn.DefaultSeverity())

	violations, err := warn.Analyze(nil, "f.ts")
	require.NoError(t, err)
	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, SeverityWarning, v.Severity)
	}
}
