package rules

import (
	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// NoEval flags direct calls to eval.
var NoEval = lint.RuleDef{
	Name:        "noEval",
	Description: "Disallows calling eval().",
	Severity:    lint.SeverityError,
	Message:     "Usage of eval() is forbidden",
	Kinds:       []string{"call_expression"},
	Check:       checkNoEval,
	Rationale:   "eval() executes arbitrary strings as code.",
	BadExample:  `eval("x + 1");`,
	GoodExample: `new Function("x", "return x + 1");`,
}

// checkNoEval matches calls whose callee is the bare identifier eval.
// Member calls such as window.eval() are not flagged, and neither are tagged
// templates (eval`x`), which tree-sitter also parses as call_expression.
func checkNoEval(n syntax.Node, src []byte) bool {
	children := n.Children()
	if len(children) == 0 || children[len(children)-1].Kind() == "template_string" {
		return false
	}
	callee := children[0]
	return callee.Kind() == "identifier" && syntax.Text(src, callee) == "eval"
}
