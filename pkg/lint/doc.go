// Package lint is the rule-execution engine of leapgate.
//
// # Architecture
//
// The package is organised in layers:
//
//  1. Contracts: Rule, Violation and Severity. A rule turns the text of one
//     file into an ordered list of violations and holds no state.
//  2. Registry: an immutable name → Rule catalogue built once at startup.
//     There is no global registry and no init()-time registration.
//  3. Analyzer: applies an ordered rule set to one file.
//  4. Runner: discovers files, analyzes them on a bounded worker pool and
//     merges the results in discovery order.
//
// # Creating Rules
//
// Most rules match syntax nodes and are best written as a RuleDef:
//
//	def := lint.RuleDef{
//	    Name:     "noEval",
//	    Severity: lint.SeverityError,
//	    Message:  "Usage of eval() is forbidden",
//	    Kinds:    []string{"call_expression"},
//	    Check:    isEvalCall,
//	}
//	rule := lint.NewTreeRule(def, provider)
//
// # Running
//
//	registry, _ := rules.NewRegistry(treesitter.New())
//	set, err := registry.Build(lint.NewConfig())
//	runner := &lint.Runner{
//	    Walker:   discovery.New(".ts"),
//	    Analyzer: lint.NewAnalyzer(set...),
//	}
//	result, err := runner.Run(ctx, "src")
//
// The engine never exits the process. Callers decide the exit status from
// result.Passed().
package lint
