package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/breaktime/internal/domain"
)

// ShowStatus writes a one-shot status summary. Styling is applied only when
// styled is true, so piped output stays plain.
func ShowStatus(w io.Writer, report domain.StatusReport, styled bool) error {
	state, err := domain.ParseStateLabel(report.State)
	if err != nil {
		return err
	}

	header := "State: " + report.State
	if styled {
		header = lipgloss.NewStyle().Bold(true).Foreground(stateColor(state)).Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, kind := range []domain.BreakKind{domain.BreakShort, domain.BreakLong} {
		line := fmt.Sprintf("  %-6s %s", kind.Label()+":", domain.FormatRemaining(report.Remaining(kind)))
		if styled {
			line = helpStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
