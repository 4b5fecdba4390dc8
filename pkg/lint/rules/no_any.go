package rules

import (
	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// NoAny flags the "any" type keyword.
var NoAny = lint.RuleDef{
	Name:        "noAny",
	Description: `Disallows the "any" type.`,
	Severity:    lint.SeverityError,
	Message:     `Usage of "any" is forbidden`,
	Kinds:       []string{"predefined_type"},
	Check:       checkNoAny,
	Rationale:   `"any" switches off type checking for everything it touches.`,
	BadExample:  `const x: any = 1;`,
	GoodExample: `const x: unknown = 1;`,
}

// Identifiers spelled "any" are not predefined_type nodes, so only the type
// keyword matches.
func checkNoAny(n syntax.Node, src []byte) bool {
	return syntax.Text(src, n) == "any"
}
