package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// timeLayout is fixed-width so that timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveRun records a run and its violations in one transaction. A run
// without an ID gets a fresh UUID; counts default to the violations given.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run, violations []lint.Violation) (err error) {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if run.ID == "" {
		run.ID = generateID()
	}
	if run.Violations == 0 {
		run.Violations = len(violations)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	s.logger.Debug("saving run",
		slog.String("id", run.ID),
		slog.String("root", run.Root),
		slog.Int("violations", len(violations)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, rules, started_at, finished_at, files, violations, diagnostics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, strings.Join(run.Rules, ","),
		run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
		run.Files, run.Violations, run.Diagnostics,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, v := range violations {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO violations (run_id, seq, rule_name, message, file_path, line, col, severity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, v.RuleName, v.Message, v.FilePath, v.Line, v.Column, v.Severity.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert violation %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, root, rules, started_at, finished_at, files, violations, diagnostics`

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// RunViolations returns the violations recorded for a run, in their
// original order.
func (s *SQLiteStore) RunViolations(ctx context.Context, id string) ([]lint.Violation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rule_name, message, file_path, line, col, severity
		 FROM violations WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	var out []lint.Violation
	for rows.Next() {
		var (
			v   lint.Violation
			sev string
		)
		if err := rows.Scan(&v.RuleName, &v.Message, &v.FilePath, &v.Line, &v.Column, &sev); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		if parsed, ok := lint.ParseSeverity(sev); ok {
			v.Severity = parsed
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run               Run
		rules             string
		started, finished string
	)
	if err := row.Scan(&run.ID, &run.Root, &rules, &started, &finished,
		&run.Files, &run.Violations, &run.Diagnostics); err != nil {
		return nil, err
	}

	if rules != "" {
		run.Rules = strings.Split(rules, ",")
	}

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", started, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("invalid finished_at %q: %w", finished, err)
	}
	return &run, nil
}
