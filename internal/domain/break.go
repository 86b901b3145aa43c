// Package domain holds the break scheduling model: break kinds, timer
// states, the per-kind schedule and the configuration the timer runs on.
package domain

import "fmt"

// BreakKind identifies which independent schedule a break belongs to.
type BreakKind string

const (
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// BreakKinds lists every kind, long first to match due-check precedence.
var BreakKinds = []BreakKind{BreakLong, BreakShort}

// ParseBreakKind converts an external break-kind string into a BreakKind.
func ParseBreakKind(s string) (BreakKind, error) {
	switch BreakKind(s) {
	case BreakShort:
		return BreakShort, nil
	case BreakLong:
		return BreakLong, nil
	default:
		return "", fmt.Errorf("%w: %q (must be short or long)", ErrInvalidBreakKind, s)
	}
}

// Label returns the capitalised name used in state labels.
func (k BreakKind) Label() string {
	switch k {
	case BreakShort:
		return "Short"
	case BreakLong:
		return "Long"
	default:
		return "Unknown"
	}
}

// Other returns the opposite kind.
func (k BreakKind) Other() BreakKind {
	if k == BreakShort {
		return BreakLong
	}
	return BreakShort
}

// BreakMessage returns the title and body shown when a break of this kind starts.
func (k BreakKind) BreakMessage() (title, body string) {
	if k == BreakLong {
		return "Time for a long break!", "Stand up, stretch, and take a walk"
	}
	return "Time for a short break!", "Look away from your screen and rest your eyes"
}
