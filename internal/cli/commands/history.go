package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapgate/internal/cli/config"
	"github.com/leapstack-labs/leapgate/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs",
		Long: `Show runs recorded by the history reporter, newest first.

Pass a run ID to list the violations of that run. The database is the one
configured by history_db or --history-db.`,
		Example: `  # List the last 20 runs
  leapgate history

  # List every run
  leapgate history --limit 0

  # Show the violations of one run
  leapgate history 3f0c9a52-0b1e-4d8e-9f61-2a7d5c1e8b40`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			store, err := openHistory(cmd, cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) > 0 {
				return showRun(cmd, store, args[0])
			}
			return listRuns(cmd, store, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of runs to show (0 = all)")
	cmd.Flags().String("history-db", config.DefaultHistoryDB, "SQLite database of the history reporter")

	return cmd
}

// openHistory opens an existing history database. It never creates one.
func openHistory(cmd *cobra.Command, path string) (*state.SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no history recorded at %s (run check with --reporters history)", path)
		}
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	store := state.NewSQLiteStore(config.GetLogger(cmd.Context()))
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, nil
}

func listRuns(cmd *cobra.Command, store state.Store, opts *HistoryOptions) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	renderRuns(cmd.OutOrStdout(), runs)
	return nil
}

func renderRuns(w io.Writer, runs []state.Run) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "No runs recorded.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Started", "Duration", "Root", "Files", "Violations", "Diagnostics"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond),
			r.Root,
			r.Files,
			r.Violations,
			r.Diagnostics,
		})
	}
	t.Render()
}

func showRun(cmd *cobra.Command, store state.Store, id string) error {
	ctx := cmd.Context()
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	violations, err := store.RunViolations(ctx, id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Run %s\n", run.ID)
	_, _ = fmt.Fprintf(w, "  Root:    %s\n", run.Root)
	_, _ = fmt.Fprintf(w, "  Rules:   %s\n", strings.Join(run.Rules, ", "))
	_, _ = fmt.Fprintf(w, "  Started: %s (%s)\n", run.StartedAt.Local().Format(time.DateTime), run.Duration().Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "  Files:   %d, %d %s\n\n", run.Files, run.Diagnostics, plural(run.Diagnostics, "diagnostic"))

	if len(violations) == 0 {
		_, _ = fmt.Fprintln(w, "No violations.")
		return nil
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Location", "Rule", "Severity", "Message"})
	for _, v := range violations {
		t.AppendRow(table.Row{v.Location(), v.RuleName, v.Severity, truncate(v.Message, 60)})
	}
	t.Render()
	return nil
}
