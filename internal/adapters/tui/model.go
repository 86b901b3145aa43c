// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// tickMsg is sent on every refresh tick.
type tickMsg time.Time

// statusMsg carries a status fetched from the daemon.
type statusMsg struct {
	report domain.StatusReport
	err    error
}

// actionMsg reports the outcome of a control request.
type actionMsg struct {
	action string
	err    error
}

// Model is the live dashboard. It polls the control surface once per second
// and forwards key presses to it.
type Model struct {
	ctx     context.Context
	control ports.ControlSurface
	config  domain.TimerConfig

	report  domain.StatusReport
	state   domain.TimerState
	loaded  bool
	err     error
	message string

	// breakSeen is when the dashboard watched the current break begin.
	// It stays zero for a break already running at the first fetch.
	breakSeen time.Time
	now       func() time.Time

	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
}

// NewModel creates a dashboard over control. config supplies the intervals
// used to draw the progress bars.
func NewModel(ctx context.Context, control ports.ControlSurface, config domain.TimerConfig) Model {
	keys := defaultKeyMap()
	// Policy-denied verbs are neither offered in help nor sent to the daemon.
	keys.Skip.SetEnabled(config.CanSkip())
	keys.Postpone.SetEnabled(config.CanPostpone())

	return Model{
		ctx:      ctx,
		control:  control,
		config:   config,
		keys:     keys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    getTerminalWidth(),
		now:      time.Now,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatusCmd(), tickCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchStatusCmd(), tickCmd())

	case statusMsg:
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			if state, err := domain.ParseStateLabel(msg.report.State); err == nil {
				m.observeState(state)
			}
			m.loaded = true
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
			m.message = ""
		} else {
			m.err = nil
			m.message = msg.action
		}
		return m, m.fetchStatusCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Short):
		return m, m.actionCmd("Short break started", func(ctx context.Context) error {
			return m.control.StartBreak(ctx, string(domain.BreakShort))
		})
	case key.Matches(msg, m.keys.Long):
		return m, m.actionCmd("Long break started", func(ctx context.Context) error {
			return m.control.StartBreak(ctx, string(domain.BreakLong))
		})
	case key.Matches(msg, m.keys.Skip):
		return m, m.actionCmd("Break skipped", m.control.SkipBreak)
	case key.Matches(msg, m.keys.Postpone):
		kind := m.postponeTarget()
		return m, m.actionCmd(kind.Label()+" break postponed", func(ctx context.Context) error {
			return m.control.PostponeBreak(ctx, string(kind))
		})
	case key.Matches(msg, m.keys.Pause):
		if m.state.IsPaused() {
			return m, m.actionCmd("Resumed", m.control.Resume)
		}
		return m, m.actionCmd("Paused", m.control.Pause)
	}
	return m, nil
}

// observeState records state and notes when a break starts in view.
func (m *Model) observeState(state domain.TimerState) {
	switch {
	case !state.IsInBreak():
		m.breakSeen = time.Time{}
	case state != m.state && m.loaded:
		m.breakSeen = m.now()
	}
	m.state = state
}

// breakRemaining estimates the time left in the active break from the
// configured duration. ok is false when the start of the break was not seen.
func (m Model) breakRemaining() (time.Duration, bool) {
	kind, inBreak := m.state.BreakKind()
	if !inBreak || m.breakSeen.IsZero() {
		return 0, false
	}
	return m.config.Break(kind).Duration - m.now().Sub(m.breakSeen), true
}

// postponeTarget is the active break kind, or else the kind due soonest.
func (m Model) postponeTarget() domain.BreakKind {
	if kind, ok := m.state.BreakKind(); ok {
		return kind
	}
	if m.report.LongRemainingSeconds < m.report.ShortRemainingSeconds {
		return domain.BreakLong
	}
	return domain.BreakShort
}

func (m Model) fetchStatusCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.control.GetStatus(m.ctx)
		return statusMsg{report: report, err: err}
	}
}

func (m Model) actionCmd(label string, action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: label, err: action(m.ctx)}
	}
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
