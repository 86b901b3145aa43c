package services

import (
	"context"
	"fmt"

	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// ControlService implements the control surface on top of the timer. Break
// kinds are validated before any policy check, and skip or postpone requests
// are refused when the configuration forbids them.
type ControlService struct {
	timer *TimerService
}

var _ ports.ControlSurface = (*ControlService)(nil)

// NewControlService creates a control surface for the given timer.
func NewControlService(timer *TimerService) *ControlService {
	return &ControlService{timer: timer}
}

// StartBreak starts a break of the named kind immediately.
func (s *ControlService) StartBreak(ctx context.Context, kind string) error {
	k, err := domain.ParseBreakKind(kind)
	if err != nil {
		return err
	}
	id := s.timer.StartBreak(k)
	logger.Info(ctx, "Break started on request", "kind", k, "break_id", id)
	return nil
}

// SkipBreak ends the active break early.
func (s *ControlService) SkipBreak(ctx context.Context) error {
	cfg := s.timer.Config()
	if !cfg.CanSkip() {
		return fmt.Errorf("%w: skipping breaks is disabled", domain.ErrPolicyDenied)
	}
	state := s.timer.State()
	s.timer.SkipBreak()
	if kind, ok := state.BreakKind(); ok {
		logger.Info(ctx, "Break skipped", "kind", kind)
	}
	return nil
}

// PostponeBreak delays the named kind by the configured postpone duration.
func (s *ControlService) PostponeBreak(ctx context.Context, kind string) error {
	k, err := domain.ParseBreakKind(kind)
	if err != nil {
		return err
	}
	cfg := s.timer.Config()
	if !cfg.CanPostpone() {
		return fmt.Errorf("%w: postponing breaks is disabled", domain.ErrPolicyDenied)
	}
	s.timer.PostponeBreak(k)
	logger.Info(ctx, "Break postponed", "kind", k, "by", cfg.PostponeDuration)
	return nil
}

// Pause freezes both countdowns.
func (s *ControlService) Pause(ctx context.Context) error {
	s.timer.Pause()
	logger.Info(ctx, "Timer paused")
	return nil
}

// Resume unfreezes both countdowns.
func (s *ControlService) Resume(ctx context.Context) error {
	s.timer.Resume()
	logger.Info(ctx, "Timer resumed")
	return nil
}

// GetStatus returns the current state label and remaining seconds.
func (s *ControlService) GetStatus(_ context.Context) (domain.StatusReport, error) {
	return s.timer.Snapshot().Report(), nil
}
