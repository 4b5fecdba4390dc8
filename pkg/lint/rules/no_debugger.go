package rules

import (
	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// NoDebugger flags debugger statements left in source.
var NoDebugger = lint.RuleDef{
	Name:        "noDebugger",
	Description: "Disallows debugger statements.",
	Severity:    lint.SeverityWarning,
	Message:     "Unexpected debugger statement",
	Kinds:       []string{"debugger_statement"},
	Check:       func(syntax.Node, []byte) bool { return true },
	BadExample:  `debugger;`,
}
