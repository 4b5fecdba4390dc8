package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapgate/pkg/discovery"
	"github.com/leapstack-labs/leapgate/pkg/syntax"
)

// FileWalker lists the files a run analyzes, in a deterministic order.
type FileWalker interface {
	Walk(root string) (*discovery.Result, error)
}

// Result is the aggregate outcome of a run.
type Result struct {
	// Files holds the analyzed paths in discovery order.
	Files []string

	// Violations holds one contiguous block per file, blocks in discovery
	// order, each block in rule order then document order.
	Violations []Violation

	// Diagnostics holds discovery, read, parse and rule failures.
	Diagnostics []Diagnostic
}

// Passed returns true if the run found no violations.
func (r *Result) Passed() bool {
	return len(r.Violations) == 0
}

// DiagnosticPaths returns the distinct paths with at least one diagnostic of
// the given kinds (any kind when none are given), in first-seen order.
func (r *Result) DiagnosticPaths(kinds ...DiagnosticKind) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, d := range r.Diagnostics {
		if len(kinds) > 0 && !slices.Contains(kinds, d.Kind) {
			continue
		}
		if !seen[d.Path] {
			seen[d.Path] = true
			paths = append(paths, d.Path)
		}
	}
	return paths
}

// CountBySeverity returns the number of violations per severity.
func (r *Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, v := range r.Violations {
		counts[v.Severity]++
	}
	return counts
}

// Runner analyzes a directory tree on a bounded pool of workers.
type Runner struct {
	Walker   FileWalker
	Analyzer *Analyzer

	// Workers caps the number of files analyzed at once.
	// Zero means runtime.NumCPU().
	Workers int

	Logger *slog.Logger

	// OnStart, if set, is called once with the number of discovered files
	// before any of them is analyzed.
	OnStart func(total int)

	// OnFileDone, if set, is called from worker goroutines after each file.
	OnFileDone func(path string)

	// ReadFile defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// fileOutcome is the private slot one unit of work writes to.
type fileOutcome struct {
	violations  []Violation
	diagnostics []Diagnostic
}

// Run walks root and analyzes every discovered file.
//
// Files are processed concurrently but merged in discovery order, so the
// result does not depend on scheduling. A file that cannot be read, parsed
// or analyzed becomes a diagnostic and the run goes on. Run returns an error
// only when root cannot be walked or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, root string) (*Result, error) {
	logger := r.logger()

	found, err := r.Walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	result := &Result{Files: found.Files}
	for _, skipped := range found.Skipped {
		result.Diagnostics = append(result.Diagnostics, NewDiagnostic("", skipped))
	}

	logger.Debug("discovered files", "root", root, "count", len(found.Files), "skipped_dirs", len(found.Skipped))

	if r.OnStart != nil {
		r.OnStart(len(found.Files))
	}

	slots := make([]fileOutcome, len(found.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range found.Files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			slots[i] = r.analyzeFile(path)
			if r.OnFileDone != nil {
				r.OnFileDone(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, slot := range slots {
		result.Violations = append(result.Violations, slot.violations...)
		result.Diagnostics = append(result.Diagnostics, slot.diagnostics...)
	}

	logger.Info("analysis complete",
		"files", len(result.Files),
		"violations", len(result.Violations),
		"diagnostics", len(result.Diagnostics),
	)

	return result, nil
}

// analyzeFile is one unit of work. A panic inside a rule is converted into a
// diagnostic and the file contributes no violations.
func (r *Runner) analyzeFile(path string) (out fileOutcome) {
	logger := r.logger()

	defer func() {
		if p := recover(); p != nil {
			logger.Error("rule panicked", "path", path, "panic", p)
			out = fileOutcome{diagnostics: []Diagnostic{
				NewDiagnostic(path, &RuleExecutionError{Path: path, Err: fmt.Errorf("panic: %v", p)}),
			}}
		}
	}()

	read := r.ReadFile
	if read == nil {
		read = os.ReadFile
	}

	source, err := read(path)
	if err != nil {
		readErr := &ReadError{Path: path, Err: err}
		logger.Warn("failed to read file", "path", path, "error", err)
		return fileOutcome{diagnostics: []Diagnostic{NewDiagnostic(path, readErr)}}
	}

	violations, err := r.Analyzer.AnalyzeFile(source, path)
	diagnostics := diagnosticsFrom(path, err)
	logDiagnostics(logger, path, diagnostics)
	return fileOutcome{
		violations:  violations,
		diagnostics: diagnostics,
	}
}

// logDiagnostics logs a parse failure once per file, however many rules hit
// it, and each other rule failure on its own.
func logDiagnostics(logger *slog.Logger, path string, diagnostics []Diagnostic) {
	parseLogged := false
	for _, d := range diagnostics {
		if d.Kind == DiagnosticParse {
			if !parseLogged {
				var parseErr *syntax.ParseError
				if !errors.As(d.Err, &parseErr) {
					parseErr = &syntax.ParseError{Path: path, Message: d.Err.Error()}
				}
				logger.Warn("file skipped: unparseable", "path", path, "error", parseErr, "source", parseErr.Excerpt)
				parseLogged = true
			}
			continue
		}
		logger.Warn("rule failed", "path", path, "rule", d.Rule, "error", d.Err)
	}
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
