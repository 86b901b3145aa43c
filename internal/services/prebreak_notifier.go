package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// PreBreakNotifier warns the user shortly before a break is due. Each kind
// is announced once per approach; the flag re-arms when the remaining time
// climbs back above the lead plus domain.NotificationHysteresis.
type PreBreakNotifier struct {
	timer      *TimerService
	notifier   ports.Notifier
	resolution time.Duration
	notified   map[domain.BreakKind]bool
}

// NewPreBreakNotifier creates a notifier evaluated every resolution. A
// deadline overdue by more than one resolution is not announced.
func NewPreBreakNotifier(timer *TimerService, notifier ports.Notifier, resolution time.Duration) *PreBreakNotifier {
	if resolution <= 0 {
		resolution = DefaultTickInterval
	}
	return &PreBreakNotifier{
		timer:      timer,
		notifier:   notifier,
		resolution: resolution,
		notified:   make(map[domain.BreakKind]bool, len(domain.BreakKinds)),
	}
}

// Check evaluates both kinds against one status snapshot.
func (n *PreBreakNotifier) Check(ctx context.Context) {
	status := n.timer.Snapshot()
	cfg := n.timer.Config()

	lead := domain.WholeSeconds(cfg.NotificationLead)
	rearm := domain.WholeSeconds(cfg.NotificationLead + domain.NotificationHysteresis)
	overdue := -domain.WholeSeconds(n.resolution)

	for _, kind := range domain.BreakKinds {
		remaining := domain.WholeSeconds(status.Remaining(kind))

		if remaining > rearm {
			n.notified[kind] = false
			continue
		}
		if remaining > lead || n.notified[kind] {
			continue
		}
		if !cfg.Break(kind).Enabled || status.State.IsPaused() || remaining < overdue {
			continue
		}
		if active, ok := status.State.BreakKind(); ok && active == kind {
			continue
		}

		n.notified[kind] = true
		title, body := preBreakMessage(kind, remaining)
		logger.Debug(ctx, "Announcing upcoming break", "kind", kind, "remaining_seconds", remaining)
		if n.notifier != nil {
			n.notifier.Notify(ctx, title, body)
		}
	}
}

// Notified reports whether the kind has been announced for its current approach.
func (n *PreBreakNotifier) Notified(kind domain.BreakKind) bool {
	return n.notified[kind]
}

func preBreakMessage(kind domain.BreakKind, remaining int64) (string, string) {
	if remaining < 0 {
		remaining = 0
	}
	title := fmt.Sprintf("%s break coming up", kind.Label())
	return title, fmt.Sprintf("%s break in %d seconds", kind.Label(), remaining)
}
