package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

const separator = "------------------------------------------------------------------------"

// ConsoleReporter prints a pass/fail banner to out and one line per
// violation to errOut:
//
//	<file>:<line>:<column> <message>
//
// Each stream has its own styles, so redirecting one of them to a file
// keeps escape codes out of it.
type ConsoleReporter struct {
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	errStyles Styles
}

// NewConsoleReporter creates a console reporter. styles render the banner on
// out and errStyles the violation lines on errOut.
func NewConsoleReporter(out, errOut io.Writer, styles, errStyles Styles) *ConsoleReporter {
	return &ConsoleReporter{out: out, errOut: errOut, styles: styles, errStyles: errStyles}
}

func (c *ConsoleReporter) Name() string { return "console" }

func (c *ConsoleReporter) Report(_ context.Context, violations []lint.Violation) error {
	if len(violations) == 0 {
		_, err := fmt.Fprintf(c.out, "%s\n%s\n", c.styles.Success.Render("Quality gate passed!"), separator)
		return err
	}

	noun := "violations"
	if len(violations) == 1 {
		noun = "violation"
	}

	var header strings.Builder
	fmt.Fprintln(&header, separator)
	fmt.Fprintln(&header, c.styles.Failure.Render(fmt.Sprintf("QUALITY GATE FAILED! Found %d %s", len(violations), noun)))
	fmt.Fprintln(&header, separator)
	fmt.Fprintln(&header, c.styles.Header.Render("Violations:"))
	if _, err := io.WriteString(c.out, header.String()); err != nil {
		return err
	}

	var body strings.Builder
	for _, v := range violations {
		fmt.Fprintf(&body, "\t- %s %s\n", c.errStyles.Severity(v.Severity).Render(v.Location()), v.Message)
	}
	_, err := io.WriteString(c.errOut, body.String())
	return err
}
