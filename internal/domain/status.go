package domain

import (
	"fmt"
	"time"
)

// Status is a consistent snapshot of the timer taken under one read section.
// BreakID is the active break's log correlation ID, empty outside a break.
type Status struct {
	State          TimerState
	ShortRemaining time.Duration
	LongRemaining  time.Duration
	BreakRemaining time.Duration
	BreakID        string
}

// Remaining returns the time until the given kind is due.
func (s Status) Remaining(kind BreakKind) time.Duration {
	if kind == BreakLong {
		return s.LongRemaining
	}
	return s.ShortRemaining
}

// Report converts the snapshot into the control surface tuple.
func (s Status) Report() StatusReport {
	return StatusReport{
		State:                 s.State.String(),
		ShortRemainingSeconds: WholeSeconds(s.ShortRemaining),
		LongRemainingSeconds:  WholeSeconds(s.LongRemaining),
	}
}

// StatusReport is the transport-neutral answer to GetStatus.
type StatusReport struct {
	State                 string `json:"state"`
	ShortRemainingSeconds int64  `json:"short_remaining_seconds"`
	LongRemainingSeconds  int64  `json:"long_remaining_seconds"`
}

// Remaining returns the time until the given kind is due.
func (r StatusReport) Remaining(kind BreakKind) time.Duration {
	if kind == BreakLong {
		return time.Duration(r.LongRemainingSeconds) * time.Second
	}
	return time.Duration(r.ShortRemainingSeconds) * time.Second
}

// WholeSeconds truncates d toward zero to whole seconds.
func WholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// FormatRemaining renders a countdown as "12m 5s" or "40s". Overdue values
// render as "0s".
func FormatRemaining(d time.Duration) string {
	total := WholeSeconds(d)
	if total < 0 {
		total = 0
	}
	minutes := total / 60
	seconds := total % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
