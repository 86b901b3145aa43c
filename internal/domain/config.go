package domain

import (
	"errors"
	"fmt"
	"time"
)

// NotificationHysteresis is the distance past the notification lead time the
// remaining time must rise to before a kind can be notified again.
const NotificationHysteresis = 10 * time.Second

// BreakConfig holds the parameters of one break kind.
type BreakConfig struct {
	Interval time.Duration
	Duration time.Duration
	Enabled  bool
}

// TimerConfig contains the runtime settings of the break timer.
type TimerConfig struct {
	Short BreakConfig
	Long  BreakConfig

	IdleDetection    bool
	IdleThreshold    time.Duration
	NotificationLead time.Duration
	AllowSkip        bool
	AllowPostpone    bool
	PostponeDuration time.Duration
	StrictMode       bool
}

// DefaultTimerConfig returns the 20-20-20 style defaults.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Short: BreakConfig{
			Interval: 20 * time.Minute,
			Duration: 20 * time.Second,
			Enabled:  true,
		},
		Long: BreakConfig{
			Interval: 60 * time.Minute,
			Duration: 5 * time.Minute,
			Enabled:  true,
		},
		IdleDetection:    true,
		IdleThreshold:    5 * time.Minute,
		NotificationLead: 10 * time.Second,
		AllowSkip:        true,
		AllowPostpone:    true,
		PostponeDuration: 5 * time.Minute,
	}
}

// Break returns the configuration for the given kind.
func (c TimerConfig) Break(kind BreakKind) BreakConfig {
	if kind == BreakLong {
		return c.Long
	}
	return c.Short
}

// CanSkip reports whether skipping a break is permitted.
func (c TimerConfig) CanSkip() bool {
	return c.AllowSkip && !c.StrictMode
}

// CanPostpone reports whether postponing a break is permitted.
func (c TimerConfig) CanPostpone() bool {
	return c.AllowPostpone && !c.StrictMode
}

// Validate checks the configuration for values the timer cannot run on.
func (c TimerConfig) Validate() error {
	var errs []error
	for _, kind := range BreakKinds {
		bc := c.Break(kind)
		if bc.Interval <= 0 {
			errs = append(errs, fmt.Errorf("%s break interval must be positive, got %s", kind, bc.Interval))
		}
		if bc.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s break duration must be positive, got %s", kind, bc.Duration))
		}
	}
	if c.IdleThreshold <= 0 {
		errs = append(errs, fmt.Errorf("idle threshold must be positive, got %s", c.IdleThreshold))
	}
	if c.NotificationLead < 0 {
		errs = append(errs, fmt.Errorf("notification lead must not be negative, got %s", c.NotificationLead))
	}
	if c.PostponeDuration <= 0 {
		errs = append(errs, fmt.Errorf("postpone duration must be positive, got %s", c.PostponeDuration))
	}
	return errors.Join(errs...)
}
