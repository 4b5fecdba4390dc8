package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
	"github.com/leapstack-labs/leapgate/pkg/syntax/treesitter"
)

func analyze(t *testing.T, def lint.RuleDef, src string) []lint.Violation {
	t.Helper()
	violations, err := lint.NewTreeRule(def, treesitter.New()).Analyze([]byte(src), "test.ts")
	require.NoError(t, err)
	return violations
}

type position struct{ line, column int }

func positions(vs []lint.Violation) []position {
	out := make([]position, 0, len(vs))
	for _, v := range vs {
		out = append(out, position{v.Line, v.Column})
	}
	return out
}

func TestNoAny(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []position
	}{
		{"annotation", "const x: any = 1;", []position{{1, 10}}},
		{"third line", "const a = 1;\nconst b = 2;\nconst c: any = 3;\nconst d = 4;\n", []position{{3, 10}}},
		{"parameter and return", "function f(a: any): any { return a; }", []position{{1, 15}, {1, 21}}},
		{"array and generic", "let xs: any[] = [];\nlet m: Map<string, any>;", []position{{1, 9}, {2, 20}}},
		{"as expression", "const y = v as any;", []position{{1, 16}}},
		{"property named any", "obj.any = 1;\nconst anyValue = 2;", nil},
		{"string content", `const s = "any";`, nil},
		{"other types", "let n: number; let u: unknown;", nil},
		{"empty file", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, NoAny, tt.src)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, positions(got))
			for _, v := range got {
				assert.Equal(t, "noAny", v.RuleName)
				assert.Equal(t, `Usage of "any" is forbidden`, v.Message)
				assert.Equal(t, lint.SeverityError, v.Severity)
				assert.Equal(t, "test.ts", v.FilePath)
			}
		})
	}
}

func TestNoAny_CRLF(t *testing.T) {
	got := analyze(t, NoAny, "let a = 1;\r\nlet b: any;\r\n")
	assert.Equal(t, []position{{2, 8}}, positions(got))
}

func TestNoEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []position
	}{
		{"direct call", `eval("1 + 1");`, []position{{1, 1}}},
		{"nested in function", "function run(code: string) {\n  return eval(code);\n}", []position{{2, 10}}},
		{"two calls", "eval(a);\neval(b);", []position{{1, 1}, {2, 1}}},
		{"member call", `window.eval("x");`, nil},
		{"reference without call", "const e = eval;", nil},
		{"other function", "evaluate(x);", nil},
		{"string mention", `log("eval(x)");`, nil},
		{"tagged template", "eval`x`;", nil},
		{"template argument", "eval(`x`);", []position{{1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, NoEval, tt.src)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, positions(got))
			for _, v := range got {
				assert.Equal(t, "noEval", v.RuleName)
				assert.Equal(t, "Usage of eval() is forbidden", v.Message)
			}
		})
	}
}

func TestNoDebugger(t *testing.T) {
	got := analyze(t, NoDebugger, "function f() {\n  debugger;\n}\n")
	require.Len(t, got, 1)
	assert.Equal(t, position{2, 3}, positions(got)[0])
	assert.Equal(t, lint.SeverityWarning, got[0].Severity)

	assert.Empty(t, analyze(t, NoDebugger, "const debuggerEnabled = true;"))
}

func TestRules_ParseError(t *testing.T) {
	rule := lint.NewTreeRule(NoAny, treesitter.New())

	violations, err := rule.Analyze([]byte("let x: any = (;"), "broken.ts")
	require.Error(t, err)
	assert.Empty(t, violations)

	var perr *syntax.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(treesitter.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"noAny", "noEval", "noDebugger"}, registry.Names())

	rule, err := registry.Lookup("noEval")
	require.NoError(t, err)
	assert.Equal(t, lint.SeverityError, rule.DefaultSeverity())

	_, err = registry.Lookup("noEvl")
	var notFound *lint.RuleNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "noEvl", notFound.Name)
}

func TestRules_Deterministic(t *testing.T) {
	src := []byte("const a: any = eval('x');\nfunction g(b: any) { debugger; return eval(b); }\n")
	analyzer := lint.NewAnalyzer(All(treesitter.New())...)

	first, err := analyzer.AnalyzeFile(src, "d.ts")
	require.NoError(t, err)
	require.Len(t, first, 5)

	for i := 0; i < 5; i++ {
		again, err := analyzer.AnalyzeFile(src, "d.ts")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Rule order, then document order.
	names := make([]string, 0, len(first))
	for _, v := range first {
		names = append(names, v.RuleName)
	}
	assert.Equal(t, []string{"noAny", "noAny", "noEval", "noEval", "noDebugger"}, names)
}
