package lint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

func TestAnalyzer_EmptyRuleSet(t *testing.T) {
	a := NewAnalyzer()

	violations, err := a.AnalyzeFile([]byte("const x: any = eval('1');"), "a.ts")
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestAnalyzer_RuleOrderPreserved(t *testing.T) {
	a := NewAnalyzer(fixedRule("A", 1, 2), fixedRule("B", 1))

	violations, err := a.AnalyzeFile(nil, "f.ts")
	require.NoError(t, err)
	require.Len(t, violations, 3)

	got := make([]string, 0, len(violations))
	for _, v := range violations {
		got = append(got, v.RuleName)
	}
	assert.Equal(t, []string{"A", "A", "B"}, got)
	assert.Equal(t, []int{1, 2, 1}, []int{violations[0].Line, violations[1].Line, violations[2].Line})
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := NewAnalyzer(lineRule("todo", "TODO"), lineRule("fixme", "FIXME"))
	src := []byte("a\n// TODO x\n// FIXME y\n// TODO z\n")

	first, err := a.AnalyzeFile(src, "f.ts")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := a.AnalyzeFile(src, "f.ts")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyzer_FilePathPassedThrough(t *testing.T) {
	a := NewAnalyzer(lineRule("todo", "TODO"))

	violations, err := a.AnalyzeFile([]byte("TODO"), "./src/../src/weird path.ts")
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "./src/../src/weird path.ts", violations[0].FilePath)
}

func TestAnalyzer_RuleErrorIsolated(t *testing.T) {
	boom := errors.New("boom")
	a := NewAnalyzer(fixedRule("first", 1), failingRule("broken", boom), fixedRule("last", 2))

	violations, err := a.AnalyzeFile(nil, "f.ts")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var ruleErr *RuleExecutionError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "broken", ruleErr.Rule)
	assert.Equal(t, "f.ts", ruleErr.Path)

	require.Len(t, violations, 2)
	assert.Equal(t, "first", violations[0].RuleName)
	assert.Equal(t, "last", violations[1].RuleName)
}

func TestAnalyzer_ParseErrorWrapped(t *testing.T) {
	provider := syntax.ProviderFunc(func(path string, _ []byte) (*syntax.Tree, error) {
		return nil, &syntax.ParseError{Path: path, Line: 1, Column: 3, Message: "bad"}
	})
	rule := NewTreeRule(RuleDef{Name: "anything", Check: func(syntax.Node, []byte) bool { return true }}, provider)

	_, err := NewAnalyzer(rule).AnalyzeFile([]byte("x"), "bad.ts")
	require.Error(t, err)

	var parseErr *syntax.ParseError
	assert.True(t, errors.As(err, &parseErr))
	var ruleErr *RuleExecutionError
	assert.True(t, errors.As(err, &ruleErr))
}

func TestAnalyzer_RulesCopied(t *testing.T) {
	rules := []Rule{fixedRule("A", 1)}
	a := NewAnalyzer(rules...)
	rules[0] = fixedRule("B", 1)

	require.Len(t, a.Rules(), 1)
	assert.Equal(t, "A", a.Rules()[0].Name())
}
