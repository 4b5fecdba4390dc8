package report

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// TableReporter prints a per-rule summary table.
type TableReporter struct {
	out io.Writer
}

// NewTableReporter creates a summary table reporter.
func NewTableReporter(out io.Writer) *TableReporter {
	return &TableReporter{out: out}
}

func (t *TableReporter) Name() string { return "table" }

type ruleSummary struct {
	rule       string
	severity   lint.Severity
	violations int
	files      map[string]bool
}

func (t *TableReporter) Report(_ context.Context, violations []lint.Violation) error {
	if len(violations) == 0 {
		_, err := fmt.Fprintln(t.out, "(0 violations)")
		return err
	}

	// Rules appear in first-seen order.
	var order []string
	summaries := make(map[string]*ruleSummary)
	allFiles := make(map[string]bool)
	for _, v := range violations {
		s, ok := summaries[v.RuleName]
		if !ok {
			s = &ruleSummary{rule: v.RuleName, severity: v.Severity, files: make(map[string]bool)}
			summaries[v.RuleName] = s
			order = append(order, v.RuleName)
		}
		s.violations++
		s.files[v.FilePath] = true
		allFiles[v.FilePath] = true
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(t.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Rule", "Severity", "Files", "Violations"})
	for _, name := range order {
		s := summaries[name]
		tw.AppendRow(table.Row{s.rule, s.severity.String(), len(s.files), s.violations})
	}
	tw.AppendFooter(table.Row{"Total", "", len(allFiles), len(violations)})
	tw.Render()
	return nil
}
