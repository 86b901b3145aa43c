package services

import (
	"context"
	"time"

	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// DefaultTickInterval is how often the scheduler evaluates the timer.
const DefaultTickInterval = time.Second

// Scheduler drives the timer from a periodic tick. Each tick runs the idle
// controller, closes elapsed breaks, starts due breaks and finally emits
// pre-break notifications.
type Scheduler struct {
	timer    *TimerService
	idle     *IdleController
	preBreak *PreBreakNotifier
	notifier ports.Notifier
	interval time.Duration
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewScheduler wires the idle controller and pre-break notifier around timer.
func NewScheduler(timer *TimerService, probe ports.IdleProbe, notifier ports.Notifier, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		timer:    timer,
		notifier: notifier,
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.idle = NewIdleController(timer, probe)
	s.preBreak = NewPreBreakNotifier(timer, notifier, s.interval)
	return s
}

// Tick performs one scheduling pass.
func (s *Scheduler) Tick(ctx context.Context) {
	s.idle.Check(ctx)

	if kind, id, ok := s.timer.FinishElapsedBreak(); ok {
		logger.Info(ctx, "Break finished", "kind", kind, "break_id", id)
		s.notify(ctx, "Break over", "Back to work! Next "+string(kind)+" break is scheduled.")
	}

	for _, kind := range s.timer.RollOverDisabled() {
		logger.Debug(ctx, "Rolled over disabled break", "kind", kind)
	}
	if s.timer.ReleasePostponed() {
		logger.Debug(ctx, "Postponed break is due")
	}

	if kind, due := s.timer.CheckBreakTime(); due {
		id := s.timer.StartBreak(kind)
		logger.Info(ctx, "Break started", "kind", kind, "break_id", id,
			"duration", s.timer.Config().Break(kind).Duration)
		title, body := kind.BreakMessage()
		s.notify(ctx, title, body)
	}

	s.preBreak.Check(ctx)
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info(ctx, "Scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Scheduler stopped")
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

func (s *Scheduler) notify(ctx context.Context, title, body string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, title, body)
	}
}
