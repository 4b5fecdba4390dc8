package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// JSONReporter writes the violation array to a file, indented with four
// spaces, and prints a notice naming the file.
type JSONReporter struct {
	path string
	out  io.Writer
}

// NewJSONReporter creates a reporter writing to path.
func NewJSONReporter(path string, out io.Writer) *JSONReporter {
	return &JSONReporter{path: path, out: out}
}

func (j *JSONReporter) Name() string { return "json" }

// Path returns the output file.
func (j *JSONReporter) Path() string { return j.path }

func (j *JSONReporter) Report(_ context.Context, violations []lint.Violation) error {
	if violations == nil {
		violations = []lint.Violation{}
	}

	data, err := json.MarshalIndent(violations, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}

	if dir := filepath.Dir(j.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	_, err = fmt.Fprintf(j.out, "\nJSON report generated to %s\n", j.path)
	return err
}
