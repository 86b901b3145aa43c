package domain

import "fmt"

type phase uint8

const (
	phaseRunning phase = iota
	phasePaused
	phaseInBreak
	phasePostponed
)

// TimerState is the machine state of the timer. The zero value is Running.
// Fields are unexported so that only the five valid states can be built.
type TimerState struct {
	phase phase
	kind  BreakKind
}

var (
	StateRunning   = TimerState{phase: phaseRunning}
	StatePaused    = TimerState{phase: phasePaused}
	StatePostponed = TimerState{phase: phasePostponed}
)

// InBreak returns the state for an active break of the given kind.
func InBreak(kind BreakKind) TimerState {
	return TimerState{phase: phaseInBreak, kind: kind}
}

// IsRunning reports whether the state is exactly Running.
func (s TimerState) IsRunning() bool { return s.phase == phaseRunning }

// IsPaused reports whether the state is Paused.
func (s TimerState) IsPaused() bool { return s.phase == phasePaused }

// IsPostponed reports whether the state is Postponed.
func (s TimerState) IsPostponed() bool { return s.phase == phasePostponed }

// BreakKind returns the active break kind when the state is InBreak.
func (s TimerState) BreakKind() (BreakKind, bool) {
	if s.phase != phaseInBreak {
		return "", false
	}
	return s.kind, true
}

// IsInBreak reports whether any break is active.
func (s TimerState) IsInBreak() bool { return s.phase == phaseInBreak }

// Counting reports whether deadlines are live, i.e. Running or Postponed.
func (s TimerState) Counting() bool {
	return s.phase == phaseRunning || s.phase == phasePostponed
}

// String returns the stable label used on the control surface.
func (s TimerState) String() string {
	switch s.phase {
	case phasePaused:
		return "Paused"
	case phaseInBreak:
		return "InBreak:" + s.kind.Label()
	case phasePostponed:
		return "Postponed"
	default:
		return "Running"
	}
}

// ParseStateLabel converts a label produced by String back into a TimerState.
func ParseStateLabel(label string) (TimerState, error) {
	switch label {
	case "Running":
		return StateRunning, nil
	case "Paused":
		return StatePaused, nil
	case "Postponed":
		return StatePostponed, nil
	case "InBreak:Short":
		return InBreak(BreakShort), nil
	case "InBreak:Long":
		return InBreak(BreakLong), nil
	default:
		return TimerState{}, fmt.Errorf("unknown state label %q", label)
	}
}
