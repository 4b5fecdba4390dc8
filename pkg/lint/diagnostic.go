package lint

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapgate/pkg/discovery"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// DiagnosticKind classifies a failure recorded during a run.
type DiagnosticKind int

// Diagnostic kinds.
const (
	// DiagnosticDiscovery marks a subtree the walker could not list.
	DiagnosticDiscovery DiagnosticKind = iota
	// DiagnosticRead marks a file that could not be read.
	DiagnosticRead
	// DiagnosticRule marks a rule that failed on a file.
	DiagnosticRule
	// DiagnosticParse marks a file the syntax provider could not parse.
	DiagnosticParse
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticDiscovery:
		return "discovery"
	case DiagnosticRead:
		return "read"
	case DiagnosticRule:
		return "rule"
	case DiagnosticParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Diagnostic is a non-fatal failure: something the run could not analyze.
// Diagnostics are reported apart from violations and never count as one.
type Diagnostic struct {
	Kind DiagnosticKind
	Path string
	Rule string // empty unless Kind is DiagnosticRule or DiagnosticParse
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Kind, d.Err)
}

// NewDiagnostic classifies err. Unrecognised errors are treated as rule
// failures on path.
func NewDiagnostic(path string, err error) Diagnostic {
	d := Diagnostic{Kind: DiagnosticRule, Path: path, Err: err}

	var (
		skipped  *discovery.SkippedDirError
		readErr  *ReadError
		ruleErr  *RuleExecutionError
		parseErr *syntax.ParseError
	)
	if errors.As(err, &ruleErr) {
		d.Rule = ruleErr.Rule
		d.Path = ruleErr.Path
	}
	switch {
	case errors.As(err, &skipped):
		d.Kind = DiagnosticDiscovery
		d.Path = skipped.Path
	case errors.As(err, &readErr):
		d.Kind = DiagnosticRead
		d.Path = readErr.Path
	case errors.As(err, &parseErr):
		d.Kind = DiagnosticParse
	}
	return d
}

// diagnosticsFrom splits a joined error into one diagnostic per failure.
func diagnosticsFrom(path string, err error) []Diagnostic {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Diagnostic
		for _, e := range joined.Unwrap() {
			out = append(out, diagnosticsFrom(path, e)...)
		}
		return out
	}
	return []Diagnostic{NewDiagnostic(path, err)}
}
