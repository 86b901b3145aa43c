package dbus

import (
	"context"
	"errors"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// Client forwards control surface calls to a running daemon.
type Client struct {
	conn *godbus.Conn
	obj  godbus.BusObject
}

var _ ports.ControlSurface = (*Client)(nil)

// Dial connects to the session bus.
func Dial() (*Client, error) {
	conn, err := godbus.ConnectSessionBus()
	if err != nil {
		return nil, &remoteError{sentinel: domain.ErrDaemonUnavailable, msg: "cannot connect to session bus: " + err.Error()}
	}
	return &Client{conn: conn, obj: conn.Object(ServiceName, ObjectPath)}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// StartBreak starts a break of the named kind.
func (c *Client) StartBreak(ctx context.Context, kind string) error {
	return c.call(ctx, "StartBreak", kind).Err
}

// SkipBreak ends the active break.
func (c *Client) SkipBreak(ctx context.Context) error {
	return c.call(ctx, "SkipBreak").Err
}

// PostponeBreak delays the named kind.
func (c *Client) PostponeBreak(ctx context.Context, kind string) error {
	return c.call(ctx, "PostponeBreak", kind).Err
}

// Pause freezes both countdowns.
func (c *Client) Pause(ctx context.Context) error {
	return c.call(ctx, "Pause").Err
}

// Resume unfreezes both countdowns.
func (c *Client) Resume(ctx context.Context) error {
	return c.call(ctx, "Resume").Err
}

// GetStatus fetches the state label and remaining seconds.
func (c *Client) GetStatus(ctx context.Context) (domain.StatusReport, error) {
	var report domain.StatusReport
	call := c.call(ctx, "GetStatus")
	if call.Err != nil {
		return report, call.Err
	}
	if err := call.Store(&report.State, &report.ShortRemainingSeconds, &report.LongRemainingSeconds); err != nil {
		return report, fmt.Errorf("failed to decode status: %w", err)
	}
	return report, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) *godbus.Call {
	call := c.obj.CallWithContext(ctx, InterfaceName+"."+method, 0, args...)
	call.Err = fromDBusError(call.Err)
	return call
}

// remoteError keeps the daemon's message while matching a domain sentinel.
type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }

func fromDBusError(err error) error {
	if err == nil {
		return nil
	}

	var name, msg string
	var valErr godbus.Error
	var ptrErr *godbus.Error
	switch {
	case errors.As(err, &valErr):
		name, msg = valErr.Name, valErr.Error()
	case errors.As(err, &ptrErr):
		name, msg = ptrErr.Name, ptrErr.Error()
	default:
		return fmt.Errorf("dbus call failed: %w", err)
	}

	switch name {
	case ErrorInvalidArgs:
		return &remoteError{sentinel: domain.ErrInvalidBreakKind, msg: msg}
	case ErrorPolicyDenied:
		return &remoteError{sentinel: domain.ErrPolicyDenied, msg: msg}
	case "org.freedesktop.DBus.Error.ServiceUnknown", "org.freedesktop.DBus.Error.NameHasNoOwner":
		return &remoteError{sentinel: domain.ErrDaemonUnavailable, msg: "breaktime daemon is not running"}
	default:
		return fmt.Errorf("dbus call failed: %w", err)
	}
}
