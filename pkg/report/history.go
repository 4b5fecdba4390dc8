package report

import (
	"context"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapgate/internal/state"
	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// HistoryReporter appends each run to the history store.
type HistoryReporter struct {
	store state.Store
	info  RunInfo
	last  string
}

// NewHistoryReporter creates a reporter recording into store.
func NewHistoryReporter(store state.Store) *HistoryReporter {
	return &HistoryReporter{store: store}
}

func (h *HistoryReporter) Name() string { return "history" }

// Describe sets the metadata stored with the next run.
func (h *HistoryReporter) Describe(info RunInfo) {
	h.info = info
}

// LastRunID returns the ID of the most recently recorded run.
func (h *HistoryReporter) LastRunID() string {
	return h.last
}

func (h *HistoryReporter) Report(ctx context.Context, violations []lint.Violation) error {
	run := &state.Run{
		Root:        h.info.Root,
		Rules:       h.info.Rules,
		StartedAt:   h.info.StartedAt,
		FinishedAt:  h.info.FinishedAt,
		Files:       h.info.Files,
		Violations:  len(violations),
		Diagnostics: h.info.Diagnostics,
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	if err := h.store.SaveRun(ctx, run, violations); err != nil {
		return fmt.Errorf("failed to record run history: %w", err)
	}
	h.last = run.ID
	return nil
}
