// Package ports defines the interfaces (driven and driving ports)
// for the breaktime application following hexagonal architecture principles.
// These interfaces define the contracts between the scheduling core and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/breaktime/internal/domain"
)

// ControlSurface is the set of remotely invokable timer verbs.
// It is implemented by the services layer in the daemon and by transport
// clients that forward to a running daemon.
type ControlSurface interface {
	// StartBreak starts a "short" or "long" break immediately.
	StartBreak(ctx context.Context, kind string) error

	// SkipBreak ends the active break and re-arms its interval.
	SkipBreak(ctx context.Context) error

	// PostponeBreak pushes the deadline of a "short" or "long" break back.
	PostponeBreak(ctx context.Context, kind string) error

	// Pause freezes both countdowns.
	Pause(ctx context.Context) error

	// Resume unfreezes both countdowns.
	Resume(ctx context.Context) error

	// GetStatus returns the state label and both remaining times.
	GetStatus(ctx context.Context) (domain.StatusReport, error)
}

// RemoteServer exposes a ControlSurface over some transport.
// This is a driving port (called by the application layer).
type RemoteServer interface {
	// Start begins serving requests and blocks until ctx is done or serving fails.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}
