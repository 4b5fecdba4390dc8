package lint

import (
	"fmt"
	"strings"
)

// fakeRule is a Rule driven by a function, for tests.
type fakeRule struct {
	name string
	sev  Severity
	fn   func(source []byte, filePath string) ([]Violation, error)
}

func (r *fakeRule) Name() string              { return r.name }
func (r *fakeRule) DefaultSeverity() Severity { return r.sev }
func (r *fakeRule) Analyze(source []byte, filePath string) ([]Violation, error) {
	return r.fn(source, filePath)
}

// lineRule reports one violation for every line containing marker.
func lineRule(name, marker string) *fakeRule {
	r := &fakeRule{name: name, sev: SeverityError}
	r.fn = func(source []byte, filePath string) ([]Violation, error) {
		var out []Violation
		for i, line := range strings.Split(string(source), "\n") {
			if col := strings.Index(line, marker); col >= 0 {
				out = append(out, Violation{
					RuleName: name,
					Message:  fmt.Sprintf("found %s", marker),
					FilePath: filePath,
					Line:     i + 1,
					Column:   col + 1,
					Severity: r.sev,
				})
			}
		}
		return out, nil
	}
	return r
}

// fixedRule always reports the given lines.
func fixedRule(name string, lines ...int) *fakeRule {
	return &fakeRule{name: name, sev: SeverityError, fn: func(_ []byte, filePath string) ([]Violation, error) {
		out := make([]Violation, 0, len(lines))
		for _, l := range lines {
			out = append(out, Violation{RuleName: name, FilePath: filePath, Line: l, Column: 1})
		}
		return out, nil
	}}
}

func failingRule(name string, err error) *fakeRule {
	return &fakeRule{name: name, fn: func([]byte, string) ([]Violation, error) {
		return nil, err
	}}
}
