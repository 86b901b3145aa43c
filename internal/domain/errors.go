package domain

import "errors"

var (
	// ErrInvalidBreakKind is returned for a break kind other than short or long.
	ErrInvalidBreakKind = errors.New("invalid break kind")

	// ErrPolicyDenied is returned when configuration forbids skip or postpone.
	ErrPolicyDenied = errors.New("action not allowed by configuration")

	// ErrIdleUnsupported indicates idle detection is not available on this system.
	ErrIdleUnsupported = errors.New("idle detection unsupported")

	// ErrDaemonUnavailable is returned by clients when no daemon owns the bus name.
	ErrDaemonUnavailable = errors.New("breaktime daemon is not running")

	// ErrUnknownConfigKey is returned when setting a key the config does not have.
	ErrUnknownConfigKey = errors.New("unknown config key")
)
