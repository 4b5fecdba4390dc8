package lint

import "errors"

// Analyzer applies an ordered rule set to a single file.
type Analyzer struct {
	rules []Rule
}

// NewAnalyzer creates an analyzer for rules, run in the given order.
func NewAnalyzer(rules ...Rule) *Analyzer {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Analyzer{rules: owned}
}

// Rules returns the analyzer's rule set in execution order.
func (a *Analyzer) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// AnalyzeFile runs every rule against source and concatenates their
// violations in rule order.
//
// A failing rule does not stop the others: its error is wrapped in a
// *RuleExecutionError and all such errors are returned joined, alongside the
// violations of the rules that succeeded. Panics are not recovered here.
func (a *Analyzer) AnalyzeFile(source []byte, filePath string) ([]Violation, error) {
	var (
		violations []Violation
		errs       []error
	)
	for _, rule := range a.rules {
		found, err := rule.Analyze(source, filePath)
		if err != nil {
			errs = append(errs, &RuleExecutionError{Rule: rule.Name(), Path: filePath, Err: err})
			continue
		}
		violations = append(violations, found...)
	}
	return violations, errors.Join(errs...)
}
