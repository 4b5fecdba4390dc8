package lint

import (
	"github.com/leapstack-labs/leapgate/pkg/syntax"
	"github.com/leapstack-labs/leapgate/pkg/token"
)

// Rule is the interface all lint rules implement.
//
// Analyze receives the raw, unmodified file text and the path the file was
// discovered under. It must not perform I/O or mutate shared state, so one
// Rule value can serve many goroutines at once. filePath is copied verbatim
// into every violation. Violations are returned in document order.
type Rule interface {
	// Name returns the unique identifier, e.g. "noEval"
	Name() string

	// DefaultSeverity returns the severity attached to violations
	DefaultSeverity() Severity

	// Analyze checks one file.
	Analyze(source []byte, filePath string) ([]Violation, error)
}

// Describer is implemented by rules that carry documentation.
type Describer interface {
	Description() string
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
	}
	if d, ok := r.(Describer); ok {
		info.Description = d.Description()
	}
	if u, ok := r.(interface{ Unwrap() RuleDef }); ok {
		def := u.Unwrap()
		info.Rationale = def.Rationale
		info.BadExample = def.BadExample
		info.GoodExample = def.GoodExample
	}
	return info
}

// treeRule runs a RuleDef against trees produced by a syntax.Provider.
type treeRule struct {
	def      RuleDef
	provider syntax.Provider
	kinds    map[string]struct{}
}

// NewTreeRule binds def to a syntax provider.
//
// Analyze parses the source, walks the tree depth-first in pre-order and
// emits one violation per node accepted by def.Check, positioned at the
// node's first byte.
func NewTreeRule(def RuleDef, provider syntax.Provider) Rule {
	r := &treeRule{def: def, provider: provider}
	if len(def.Kinds) > 0 {
		r.kinds = make(map[string]struct{}, len(def.Kinds))
		for _, k := range def.Kinds {
			r.kinds[k] = struct{}{}
		}
	}
	return r
}

func (r *treeRule) Name() string              { return r.def.Name }
func (r *treeRule) DefaultSeverity() Severity { return r.def.Severity }
func (r *treeRule) Description() string       { return r.def.Description }

// Unwrap returns the underlying RuleDef.
func (r *treeRule) Unwrap() RuleDef {
	return r.def
}

func (r *treeRule) Analyze(source []byte, filePath string) ([]Violation, error) {
	tree, err := r.provider.Parse(filePath, source)
	if err != nil {
		return nil, err
	}

	var (
		violations []Violation
		lines      *token.LineIndex
	)
	syntax.Walk(tree.Root, func(n syntax.Node) bool {
		if r.kinds != nil {
			if _, ok := r.kinds[n.Kind()]; !ok {
				return true
			}
		}
		if !r.def.Check(n, source) {
			return true
		}

		// Built on first match.
		if lines == nil {
			lines = token.NewLineIndex(source)
		}
		pos := lines.Position(n.Start())
		violations = append(violations, Violation{
			RuleName: r.def.Name,
			Message:  r.def.Message,
			FilePath: filePath,
			Line:     pos.Line,
			Column:   pos.Column,
			Severity: r.def.Severity,
		})
		return true
	})

	return violations, nil
}

// severityRule reports an inner rule's violations under another severity.
type severityRule struct {
	Rule
	severity Severity
}

// WithSeverity returns a rule that behaves like r but tags its violations
// with severity. Returns r unchanged when the severity already matches.
func WithSeverity(r Rule, severity Severity) Rule {
	if r.DefaultSeverity() == severity {
		return r
	}
	return &severityRule{Rule: r, severity: severity}
}

func (s *severityRule) DefaultSeverity() Severity { return s.severity }

func (s *severityRule) Analyze(source []byte, filePath string) ([]Violation, error) {
	violations, err := s.Rule.Analyze(source, filePath)
	for i := range violations {
		violations[i].Severity = s.severity
	}
	return violations, err
}

// Description forwards the inner rule's description, if any.
func (s *severityRule) Description() string {
	if d, ok := s.Rule.(Describer); ok {
		return d.Description()
	}
	return ""
}
