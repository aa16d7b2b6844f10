package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// marker returns the fixed-width label and style for a status.
func marker(s Status) (string, lipgloss.Style) {
	switch s {
	case StatusPass:
		return "ok", passStyle
	case StatusFail:
		return "FAIL", failStyle
	case StatusError:
		return "ERROR", failStyle
	case StatusKnownFailure:
		return "KNOWN", warnStyle
	case StatusGap:
		return "GAP", warnStyle
	default:
		return "SKIP", mutedStyle
	}
}

// padRight pads s to a visual width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// JSON returns the report as indented JSON. Field order and verdict order
// are fixed, so the output is stable across runs.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// TextOptions controls WriteText.
type TextOptions struct {
	// Verbose also lists passing verdicts.
	Verbose bool
	// IgnoreErrors matches a run policy under which error verdicts do not
	// fail the run. The summary then shows them as a warning.
	IgnoreErrors bool
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer, opts TextOptions) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(r.Suite), mutedStyle.Render("on "+string(r.Backend)))

	nameWidth, opWidth := 0, 0
	for _, v := range r.Verdicts {
		nameWidth = max(nameWidth, lipgloss.Width(v.Scenario))
		opWidth = max(opWidth, lipgloss.Width(string(v.Op)))
	}

	for _, v := range r.Verdicts {
		if v.Status == StatusPass && !opts.Verbose {
			continue
		}
		label, style := marker(v.Status)
		line := "  " + style.Render(padRight(label, 5)) + "  " +
			padRight(v.Scenario, nameWidth) + "  " + padRight(string(v.Op), opWidth)
		if v.Diagnostic != "" {
			line += "  " + v.Diagnostic
		}
		if len(v.Gaps) > 0 {
			line += "  " + mutedStyle.Render("[gaps: "+strings.Join(v.Gaps, ", ")+"]")
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	s := r.Summary
	summary := fmt.Sprintf("%d verdicts: %d pass, %d fail, %d error, %d known failure, %d gap, %d declined",
		s.Total, s.Pass, s.Fail, s.Error, s.KnownFailure, s.Gap, s.Declined)
	b.WriteString(r.summaryStyle(opts).Render(summary) + "\n")
	if r.Incomplete {
		b.WriteString(warnStyle.Render("run cancelled before the last scenario") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) summaryStyle(opts TextOptions) lipgloss.Style {
	switch {
	case r.FailedUnder(!opts.IgnoreErrors):
		return failStyle
	case r.Summary.Error > 0:
		return warnStyle
	default:
		return passStyle
	}
}
