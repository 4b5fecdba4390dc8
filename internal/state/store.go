// Package state records the history of leapgate runs in SQLite.
//
// The history is write-mostly: every run appends one row to runs and one row
// per violation. It is read back only for reporting (leapgate history) and
// never consulted to skip analysis.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Run summarises one recorded analysis run.
type Run struct {
	ID          string
	Root        string
	Rules       []string
	StartedAt   time.Time
	FinishedAt  time.Time
	Files       int
	Violations  int
	Diagnostics int
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store persists run history.
type Store interface {
	SaveRun(ctx context.Context, run *Run, violations []lint.Violation) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	RunViolations(ctx context.Context, id string) ([]lint.Violation, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
