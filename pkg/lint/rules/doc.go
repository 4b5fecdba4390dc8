// Package rules provides the built-in TypeScript lint rules.
//
// Every rule is a lint.RuleDef bound to a syntax provider. The catalogue is
// assembled explicitly by NewRegistry; nothing registers itself on import:
//
//	registry, err := rules.NewRegistry(treesitter.New())
//	rule, err := registry.Lookup("noEval")
package rules
