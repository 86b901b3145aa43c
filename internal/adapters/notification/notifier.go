// Package notification provides desktop notification utilities.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/breaktime/internal/config"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

const defaultTimeout = 5 * time.Second

// SendFunc delivers one notification. It matches beeep.Notify.
type SendFunc func(title, message string, icon any) error

// Notifier handles desktop notifications. Delivery runs in its own goroutine
// so a slow or missing notification daemon never stalls the scheduler.
type Notifier struct {
	mu   sync.RWMutex
	cfg  config.NotificationConfig
	send SendFunc
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: beeep.Notify}
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
	return n
}

// UpdateConfig replaces the notification settings.
func (n *Notifier) UpdateConfig(cfg config.NotificationConfig) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cfg = cfg
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.Enabled
}

// Notify displays a desktop notification if enabled. It returns immediately;
// failures and timeouts are logged.
func (n *Notifier) Notify(ctx context.Context, title, body string) {
	n.mu.RLock()
	cfg, send := n.cfg, n.send
	n.mu.RUnlock()

	if !cfg.Enabled {
		return
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	go func() {
		done := make(chan error, 1)
		go func() { done <- send(title, body, "") }()

		select {
		case err := <-done:
			if err != nil {
				logger.Warn(ctx, "Failed to send notification", "title", title, "err", err)
			}
		case <-time.After(timeout):
			logger.Warn(ctx, "Notification timed out", "title", title, "timeout", timeout)
		}
	}()
}
