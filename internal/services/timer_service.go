// Package services implements the break timer and the coordination logic
// that drives it: idle-aware pausing, pre-break notifications, the tick
// scheduler and the control surface shared by local and remote callers.
package services

import (
	"sync"
	"time"

	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// TimerService is the break scheduling state machine. All methods are safe
// for concurrent use; every mutation happens in a single critical section
// and no method performs I/O while holding the lock.
type TimerService struct {
	mu       sync.RWMutex
	clock    ports.Clock
	config   domain.TimerConfig
	state    domain.TimerState
	schedule domain.Schedule
	breakEnd time.Time
	breakID  string
	pausedAt time.Time
	pauseGen uint64
}

// NewTimerService creates a Running timer with both deadlines one interval away.
func NewTimerService(config domain.TimerConfig, clock ports.Clock) *TimerService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &TimerService{
		clock:    clock,
		config:   config,
		state:    domain.StateRunning,
		schedule: domain.NewSchedule(config, clock.Now()),
	}
}

// State returns the current timer state.
func (s *TimerService) State() domain.TimerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Config returns a copy of the configuration in effect.
func (s *TimerService) Config() domain.TimerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Schedule returns a copy of both deadlines.
func (s *TimerService) Schedule() domain.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// TimeUntil returns the time left before the kind is due. The result is
// negative when the break is overdue. While paused the value is frozen.
func (s *TimerService) TimeUntil(kind domain.BreakKind) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Deadline(kind).Sub(s.referenceLocked())
}

// Snapshot returns state and remaining times read in one critical section.
func (s *TimerService) Snapshot() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref := s.referenceLocked()
	status := domain.Status{
		State:          s.state,
		ShortRemaining: s.schedule.Deadline(domain.BreakShort).Sub(ref),
		LongRemaining:  s.schedule.Deadline(domain.BreakLong).Sub(ref),
	}
	if s.state.IsInBreak() {
		status.BreakRemaining = s.breakEnd.Sub(ref)
		status.BreakID = s.breakID
	}
	return status
}

// CheckBreakTime returns the kind that is due. It only ever reports a break
// while the state is exactly Running, and long takes precedence over short.
func (s *TimerService) CheckBreakTime() (domain.BreakKind, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.IsRunning() {
		return "", false
	}
	return s.schedule.Due(s.config, s.clock.Now())
}

// StartBreak enters a break of the given kind regardless of the current
// state and returns the identifier assigned to it, for use in log lines.
func (s *TimerService) StartBreak(kind domain.BreakKind) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.leavePauseLocked(now)
	s.state = domain.InBreak(kind)
	s.breakEnd = now.Add(s.config.Break(kind).Duration)
	s.breakID = domain.NewBreakID()
	return s.breakID
}

// EndBreak finishes the active break and re-arms its kind from now.
// It is a no-op when no break is active.
func (s *TimerService) EndBreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endBreakLocked(s.clock.Now())
}

// SkipBreak forfeits the rest of the active break. It behaves exactly like
// EndBreak.
func (s *TimerService) SkipBreak() {
	s.EndBreak()
}

// FinishElapsedBreak ends the active break once its duration has run out.
// It returns the kind and identifier of the break it ended.
func (s *TimerService) FinishElapsedBreak() (domain.BreakKind, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.state.IsInBreak() || now.Before(s.breakEnd) {
		return "", "", false
	}
	id := s.breakID
	kind, ok := s.endBreakLocked(now)
	return kind, id, ok
}

// PostponeBreak extends the kind's deadline by the configured postpone
// duration and marks the timer Postponed. An active break is abandoned.
func (s *TimerService) PostponeBreak(kind domain.BreakKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leavePauseLocked(s.clock.Now())
	s.schedule.Postpone(kind, s.config.PostponeDuration)
	s.clearBreakLocked()
	s.state = domain.StatePostponed
}

// ReleasePostponed returns a Postponed timer to Running once an enabled
// deadline is due, so that CheckBreakTime can fire it.
func (s *TimerService) ReleasePostponed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsPostponed() {
		return false
	}
	if _, due := s.schedule.Due(s.config, s.clock.Now()); !due {
		return false
	}
	s.state = domain.StateRunning
	return true
}

// RollOverDisabled re-arms the deadline of every disabled kind that has
// passed, so re-enabling a kind does not fire it immediately.
func (s *TimerService) RollOverDisabled() []domain.BreakKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsPaused() {
		return nil
	}
	now := s.clock.Now()
	var rolled []domain.BreakKind
	for _, kind := range domain.BreakKinds {
		bc := s.config.Break(kind)
		if !bc.Enabled && s.schedule.IsDue(kind, now) {
			s.schedule.Rearm(kind, now, bc.Interval)
			rolled = append(rolled, kind)
		}
	}
	return rolled
}

// Pause freezes both countdowns. Callers must not pause an active break;
// the primitive allows it so it stays composable. Every call starts a new
// pause generation, taking ownership of a pause already in effect.
func (s *TimerService) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseLocked()
}

// PauseIfCounting pauses only when the state is Running or Postponed. It
// returns the generation of the new pause, for use with ResumePause.
func (s *TimerService) PauseIfCounting() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Counting() {
		return 0, false
	}
	s.pauseLocked()
	return s.pauseGen, true
}

// PauseGeneration returns the generation of the most recent pause.
func (s *TimerService) PauseGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pauseGen
}

// Resume returns to Running, shifting both deadlines by the time spent paused.
func (s *TimerService) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leavePauseLocked(s.clock.Now())
	s.state = domain.StateRunning
}

// ResumePause resumes only when the timer is still in the pause of
// generation gen. A later Pause supersedes it.
func (s *TimerService) ResumePause(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsPaused() || s.pauseGen != gen {
		return false
	}
	s.leavePauseLocked(s.clock.Now())
	s.state = domain.StateRunning
	return true
}

// UpdateConfig replaces the configuration. Deadlines already scheduled are
// kept; a new interval applies from the next time a kind is re-armed.
func (s *TimerService) UpdateConfig(config domain.TimerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

func (s *TimerService) pauseLocked() {
	if !s.state.IsPaused() {
		s.pausedAt = s.clock.Now()
	}
	s.pauseGen++
	s.state = domain.StatePaused
}

func (s *TimerService) leavePauseLocked(now time.Time) {
	if !s.state.IsPaused() || s.pausedAt.IsZero() {
		return
	}
	if frozen := now.Sub(s.pausedAt); frozen > 0 {
		s.schedule.Shift(frozen)
	}
	s.pausedAt = time.Time{}
}

func (s *TimerService) endBreakLocked(now time.Time) (domain.BreakKind, bool) {
	kind, ok := s.state.BreakKind()
	if !ok {
		return "", false
	}
	s.schedule.Rearm(kind, now, s.config.Break(kind).Interval)
	s.clearBreakLocked()
	s.state = domain.StateRunning
	return kind, true
}

func (s *TimerService) clearBreakLocked() {
	s.breakEnd = time.Time{}
	s.breakID = ""
}

func (s *TimerService) referenceLocked() time.Time {
	if s.state.IsPaused() && !s.pausedAt.IsZero() {
		return s.pausedAt
	}
	return s.clock.Now()
}
