package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a violation.
type Severity int

// Severity levels for violations.
const (
	// SeverityError indicates a violation that fails the gate.
	SeverityError Severity = iota
	// SeverityWarning indicates an issue that should be reviewed.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityError and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	default:
		return SeverityError, false
	}
}

// MarshalText encodes the severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityError, SeverityWarning:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid severity %d", int(s))
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q", string(text))
	}
	*s = sev
	return nil
}

// =============================================================================
// Violations
// =============================================================================

// Violation is a single finding produced by a rule.
// Column is 0 when the rule did not report one.
type Violation struct {
	RuleName string   `json:"ruleName"`
	Message  string   `json:"message"`
	FilePath string   `json:"filePath"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	Severity Severity `json:"severity"`
}

// HasColumn reports whether the violation carries a column.
func (v Violation) HasColumn() bool {
	return v.Column > 0
}

// Location formats the violation position as "file:line:column", or
// "file:line" when there is no column.
func (v Violation) Location() string {
	if v.HasColumn() {
		return fmt.Sprintf("%s:%d:%d", v.FilePath, v.Line, v.Column)
	}
	return fmt.Sprintf("%s:%d", v.FilePath, v.Line)
}

// String formats the violation the way console output shows it.
func (v Violation) String() string {
	return v.Location() + " " + v.Message
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven definition of a syntax-node rule.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	Name        string   // Unique identifier, e.g. "noAny"
	Description string   // Human-readable description
	Severity    Severity // Default severity
	Message     string   // Message attached to each violation
	Kinds       []string // Node kinds handed to Check; empty means every node
	Check       CheckFunc

	// Documentation fields for richer rule documentation
	Rationale   string
	BadExample  string
	GoodExample string
}

// CheckFunc reports whether node n of source src is a violation.
type CheckFunc func(n syntax.Node, src []byte) bool

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	Rationale       string   `json:"rationale,omitempty"`
	BadExample      string   `json:"bad_example,omitempty"`
	GoodExample     string   `json:"good_example,omitempty"`
}
