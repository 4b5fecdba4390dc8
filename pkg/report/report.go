// Package report delivers lint results to output sinks.
//
// A Reporter receives the final, ordered violation list of a run. Reporters
// are resolved by name (see New) so configuration files can list them:
// "console", "json", "table" and "history".
package report

import (
	"context"
	"io"
	"os"
	"slices"
	"time"

	"github.com/leapstack-labs/leapgate/internal/state"
	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// Reporter writes a run's violations somewhere.
type Reporter interface {
	// Name returns the identifier used in configuration.
	Name() string

	// Report delivers violations. It is called once per run, after analysis.
	Report(ctx context.Context, violations []lint.Violation) error
}

// RunInfo describes the run being reported.
type RunInfo struct {
	Root        string
	Rules       []string
	StartedAt   time.Time
	FinishedAt  time.Time
	Files       int
	Diagnostics int
}

// RunDescriber is implemented by reporters that record run metadata.
type RunDescriber interface {
	Describe(info RunInfo)
}

// DefaultOutputFile is where the json reporter writes when no path is set.
const DefaultOutputFile = "violations.json"

// Options carries everything reporter constructors may need.
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Styles     Styles      // for Stdout
	ErrStyles  *Styles     // for Stderr; nil means Styles
	OutputFile string      // json reporter target
	Store      state.Store // history reporter target
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Names returns the built-in reporter names.
func Names() []string {
	return []string{"console", "json", "table", "history"}
}

// ReporterNotFoundError is returned when a reporter name is unknown.
type ReporterNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ReporterNotFoundError) Error() string {
	return lint.NotFoundMessage("reporter", e.Name, e.Suggestions)
}

// Unwrap makes ReporterNotFoundError match lint.ErrConfiguration.
func (e *ReporterNotFoundError) Unwrap() error {
	return lint.ErrConfiguration
}

// New constructs the reporter registered under name.
func New(name string, opts Options) (Reporter, error) {
	switch name {
	case "console":
		errStyles := opts.Styles
		if opts.ErrStyles != nil {
			errStyles = *opts.ErrStyles
		}
		return NewConsoleReporter(opts.stdout(), opts.stderr(), opts.Styles, errStyles), nil
	case "json":
		path := opts.OutputFile
		if path == "" {
			path = DefaultOutputFile
		}
		return NewJSONReporter(path, opts.stdout()), nil
	case "table":
		return NewTableReporter(opts.stdout()), nil
	case "history":
		if opts.Store == nil {
			return nil, lint.ConfigErrorf("reporter %q needs a history database", name)
		}
		return NewHistoryReporter(opts.Store), nil
	}
	return nil, &ReporterNotFoundError{Name: name, Suggestions: lint.Suggest(name, Names())}
}

// ValidateNames returns a *ReporterNotFoundError for the first name that is
// not a known reporter.
func ValidateNames(names []string) error {
	known := Names()
	for _, name := range names {
		if !slices.Contains(known, name) {
			return &ReporterNotFoundError{Name: name, Suggestions: lint.Suggest(name, known)}
		}
	}
	return nil
}

// NewAll constructs reporters for names, in order. The first unknown name
// aborts construction.
func NewAll(names []string, opts Options) ([]Reporter, error) {
	reporters := make([]Reporter, 0, len(names))
	for _, name := range names {
		r, err := New(name, opts)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, r)
	}
	return reporters, nil
}
