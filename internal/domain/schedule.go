package domain

import "time"

// Schedule holds the absolute deadlines of both break kinds.
type Schedule struct {
	NextShort time.Time
	NextLong  time.Time
}

// NewSchedule arms both deadlines one interval from now.
func NewSchedule(cfg TimerConfig, now time.Time) Schedule {
	return Schedule{
		NextShort: now.Add(cfg.Short.Interval),
		NextLong:  now.Add(cfg.Long.Interval),
	}
}

// Deadline returns the deadline of the given kind.
func (s Schedule) Deadline(kind BreakKind) time.Time {
	if kind == BreakLong {
		return s.NextLong
	}
	return s.NextShort
}

func (s *Schedule) set(kind BreakKind, t time.Time) {
	if kind == BreakLong {
		s.NextLong = t
		return
	}
	s.NextShort = t
}

// Rearm sets the deadline to now + interval. The old deadline is discarded
// so time spent in or after a break never compounds.
func (s *Schedule) Rearm(kind BreakKind, now time.Time, interval time.Duration) {
	s.set(kind, now.Add(interval))
}

// Postpone extends the current deadline by d.
func (s *Schedule) Postpone(kind BreakKind, d time.Duration) {
	s.set(kind, s.Deadline(kind).Add(d))
}

// Shift moves both deadlines forward by d.
func (s *Schedule) Shift(d time.Duration) {
	s.NextShort = s.NextShort.Add(d)
	s.NextLong = s.NextLong.Add(d)
}

// IsDue reports whether the kind's deadline has been reached at now.
func (s Schedule) IsDue(kind BreakKind, now time.Time) bool {
	return !now.Before(s.Deadline(kind))
}

// Due returns the kind that should fire at now, long taking precedence.
// Disabled kinds are never returned.
func (s Schedule) Due(cfg TimerConfig, now time.Time) (BreakKind, bool) {
	for _, kind := range BreakKinds {
		if cfg.Break(kind).Enabled && s.IsDue(kind, now) {
			return kind, true
		}
	}
	return "", false
}
