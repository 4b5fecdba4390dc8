package rules

import (
	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// Defs returns the built-in rule definitions in registration order.
func Defs() []lint.RuleDef {
	return []lint.RuleDef{
		NoAny,
		NoEval,
		NoDebugger,
	}
}

// All binds every built-in definition to provider.
func All(provider syntax.Provider) []lint.Rule {
	defs := Defs()
	out := make([]lint.Rule, 0, len(defs))
	for _, def := range defs {
		out = append(out, lint.NewTreeRule(def, provider))
	}
	return out
}

// NewRegistry builds the registry of built-in rules.
func NewRegistry(provider syntax.Provider) (*lint.Registry, error) {
	return lint.NewRegistry(All(provider)...)
}
