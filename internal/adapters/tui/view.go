package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/breaktime/internal/domain"
)

const (
	colorRunning = lipgloss.Color("#7C6FE0")
	colorBreak   = lipgloss.Color("#4ECDC4")
	colorPaused  = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#E05F5F")
	colorHelp    = lipgloss.Color("#95A5A6")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Width(7)
	helpStyle  = lipgloss.NewStyle().Foreground(colorHelp)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
)

// stateColor returns the accent color for a timer state.
func stateColor(state domain.TimerState) lipgloss.Color {
	switch {
	case state.IsInBreak():
		return colorBreak
	case state.IsPaused():
		return colorPaused
	default:
		return colorRunning
	}
}

// View renders the dashboard.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Foreground(stateColor(m.state)).Render("breaktime · " + m.stateLine())
	sections = append(sections, title)

	if m.loaded {
		barWidth := m.width - 24
		if barWidth < 10 {
			barWidth = 10
		}
		for _, kind := range []domain.BreakKind{domain.BreakShort, domain.BreakLong} {
			sections = append(sections, m.countdownLine(kind, barWidth))
		}
	}

	sections = append(sections, "")
	switch {
	case m.err != nil:
		sections = append(sections, errorStyle.Render("Error: "+m.err.Error()))
	case m.message != "":
		sections = append(sections, helpStyle.Render(m.message))
	}
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n") + "\n"
}

func (m Model) stateLine() string {
	if !m.loaded {
		return "connecting..."
	}
	if kind, ok := m.state.BreakKind(); ok {
		title, body := kind.BreakMessage()
		line := title + " " + body
		if remaining, ok := m.breakRemaining(); ok {
			line += " · " + domain.FormatRemaining(remaining) + " left"
		}
		return line
	}
	return m.report.State
}

func (m Model) countdownLine(kind domain.BreakKind, width int) string {
	remaining := m.report.Remaining(kind)
	interval := m.config.Break(kind).Interval

	var elapsed float64
	if interval > 0 {
		elapsed = 1 - float64(remaining)/float64(interval)
	}
	elapsed = min(max(elapsed, 0), 1)

	bar := m.progress
	bar.Width = width

	label := labelStyle.Render(kind.Label())
	value := domain.FormatRemaining(remaining)
	if !m.config.Break(kind).Enabled {
		value = "off"
	}
	return label + bar.ViewAs(elapsed) + "  " + value
}
