package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Location lipgloss.Style
	Muted    lipgloss.Style
	Header   lipgloss.Style
}

// NewStyles returns styles rendered for w. With color disabled every style
// renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Success:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Error:    r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("11")),
		Location: r.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Header:   r.NewStyle().Bold(true),
	}
}

// PlainStyles returns styles that never emit escape codes.
func PlainStyles() Styles {
	return NewStyles(io.Discard, false)
}

// Severity returns the style for a severity.
func (s Styles) Severity(sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return s.Error
	case lint.SeverityWarning:
		return s.Warning
	default:
		return s.Muted
	}
}

// StylesFor returns styles for w, colored only when ColorEnabled(w).
func StylesFor(w io.Writer) Styles {
	return NewStyles(w, ColorEnabled(w))
}

// ColorEnabled reports whether w is a terminal that should get colors.
// NO_COLOR disables colors; TERM=dumb does too.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
