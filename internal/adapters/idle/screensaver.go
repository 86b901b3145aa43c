// Package idle reports user inactivity from the desktop session.
package idle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

const (
	screenSaverService = "org.freedesktop.ScreenSaver"
	screenSaverPath    = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	getSessionIdleTime = screenSaverService + ".GetSessionIdleTime"
)

// Error names meaning the session has no usable idle interface.
var unsupportedErrors = map[string]bool{
	"org.freedesktop.DBus.Error.ServiceUnknown": true,
	"org.freedesktop.DBus.Error.UnknownMethod":  true,
	"org.freedesktop.DBus.Error.UnknownObject":  true,
	"org.freedesktop.DBus.Error.NotSupported":   true,
}

// ScreenSaverProbe reads the session idle time from the
// org.freedesktop.ScreenSaver interface on the session bus.
type ScreenSaverProbe struct {
	obj dbus.BusObject
}

var _ ports.IdleProbe = (*ScreenSaverProbe)(nil)

// NewScreenSaverProbe creates a probe on an existing session bus connection.
func NewScreenSaverProbe(conn *dbus.Conn) *ScreenSaverProbe {
	return &ScreenSaverProbe{obj: conn.Object(screenSaverService, screenSaverPath)}
}

// IdleTime returns how long the session has been idle.
func (p *ScreenSaverProbe) IdleTime(ctx context.Context) (time.Duration, error) {
	var idleMillis uint32
	err := p.obj.CallWithContext(ctx, getSessionIdleTime, 0).Store(&idleMillis)
	if err != nil {
		var dbusErr dbus.Error
		if errors.As(err, &dbusErr) && unsupportedErrors[dbusErr.Name] {
			return 0, fmt.Errorf("%w: %s", domain.ErrIdleUnsupported, dbusErr.Name)
		}
		return 0, fmt.Errorf("screensaver idle time: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
