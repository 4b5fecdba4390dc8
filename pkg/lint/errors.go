package lint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is the root of every configuration failure: unknown rule
// or reporter names, malformed config values. Configuration errors are fatal
// and detected before any file is read. Test with errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigErrorf formats a configuration error that wraps ErrConfiguration.
func ConfigErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// RuleNotFoundError is returned when a rule name is not registered.
type RuleNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *RuleNotFoundError) Error() string {
	return NotFoundMessage("rule", e.Name, e.Suggestions)
}

// Unwrap makes RuleNotFoundError match ErrConfiguration.
func (e *RuleNotFoundError) Unwrap() error {
	return ErrConfiguration
}

// NotFoundMessage formats an "unknown <kind>" message with optional
// suggestions.
func NotFoundMessage(kind, name string, suggestions []string) string {
	msg := fmt.Sprintf("unknown %s %q", kind, name)
	if len(suggestions) > 0 {
		quoted := make([]string, len(suggestions))
		for i, s := range suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoted, " or "))
	}
	return msg
}

// ReadError reports a discovered file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// RuleExecutionError reports a rule that failed on one file. Parse failures
// arrive wrapped in a RuleExecutionError; use errors.As with
// *syntax.ParseError to tell them apart.
type RuleExecutionError struct {
	Rule string
	Path string
	Err  error
}

func (e *RuleExecutionError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("analysis of %s failed: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("rule %s failed on %s: %v", e.Rule, e.Path, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }
