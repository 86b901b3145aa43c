package services

import (
	"context"
	"errors"
	"time"

	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// DefaultProbeTimeout bounds a single idle probe so a stuck query cannot
// delay the rest of the tick.
const DefaultProbeTimeout = 500 * time.Millisecond

// IdleController pauses the timer while the user is away and resumes it when
// they return. It only resumes pauses it caused itself, so an explicit pause
// survives user activity. Check is meant to be called from a single goroutine.
type IdleController struct {
	timer        *TimerService
	probe        ports.IdleProbe
	probeTimeout time.Duration

	pausedByIdle bool
	pauseGen     uint64
	probeFailing bool
}

// NewIdleController creates a controller. A nil probe disables idle handling.
func NewIdleController(timer *TimerService, probe ports.IdleProbe) *IdleController {
	return &IdleController{
		timer:        timer,
		probe:        probe,
		probeTimeout: DefaultProbeTimeout,
	}
}

// Check runs one idle evaluation.
func (c *IdleController) Check(ctx context.Context) {
	cfg := c.timer.Config()
	state := c.timer.State()

	if !state.IsPaused() || c.timer.PauseGeneration() != c.pauseGen {
		// Either the pause ended or an explicit Pause took it over.
		c.pausedByIdle = false
	}
	if state.IsInBreak() {
		return
	}

	if !cfg.IdleDetection || c.probe == nil {
		// Detection was switched off while we held the timer paused.
		if c.pausedByIdle && c.timer.ResumePause(c.pauseGen) {
			c.pausedByIdle = false
			logger.Info(ctx, "Idle detection disabled, resuming timer")
		}
		return
	}

	if state.IsPaused() && !c.pausedByIdle {
		return
	}

	idle := c.isIdle(ctx, cfg.IdleThreshold)
	switch {
	case idle && state.Counting():
		if gen, ok := c.timer.PauseIfCounting(); ok {
			c.pausedByIdle = true
			c.pauseGen = gen
			logger.Info(ctx, "User idle, pausing timer", "threshold", cfg.IdleThreshold)
		}
	case !idle && c.pausedByIdle:
		if c.timer.ResumePause(c.pauseGen) {
			logger.Info(ctx, "User active again, resuming timer")
		}
		c.pausedByIdle = false
	}
}

// PausedByIdle reports whether the current pause was caused by inactivity.
func (c *IdleController) PausedByIdle() bool {
	return c.pausedByIdle
}

func (c *IdleController) isIdle(ctx context.Context, threshold time.Duration) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	idle, err := c.probe.IdleTime(probeCtx)
	if err != nil {
		if !c.probeFailing {
			c.probeFailing = true
			if errors.Is(err, domain.ErrIdleUnsupported) {
				logger.Info(ctx, "Idle detection unavailable, continuing without auto-pause", "err", err)
			} else {
				logger.Warn(ctx, "Idle probe failed, treating user as active", "err", err)
			}
		}
		return false
	}
	if c.probeFailing {
		c.probeFailing = false
		logger.Info(ctx, "Idle probe recovered")
	}
	return idle >= threshold
}
