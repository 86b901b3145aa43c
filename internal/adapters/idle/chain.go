package idle

import (
	"context"
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// Chain tries each probe in order and sticks with the first one that
// answers. Probes that report ErrIdleUnsupported are dropped for good.
// A Chain is not safe for concurrent use.
type Chain struct {
	probes []ports.IdleProbe
}

var _ ports.IdleProbe = (*Chain)(nil)

// NewChain creates a chain over probes. Nil entries are ignored.
func NewChain(probes ...ports.IdleProbe) *Chain {
	c := &Chain{}
	for _, p := range probes {
		if p != nil {
			c.probes = append(c.probes, p)
		}
	}
	return c
}

// IdleTime returns the first successful reading.
func (c *Chain) IdleTime(ctx context.Context) (time.Duration, error) {
	var errs []error
	for len(c.probes) > 0 {
		d, err := c.probes[0].IdleTime(ctx)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, domain.ErrIdleUnsupported) {
			// Transient failure: keep the probe for the next tick.
			return 0, err
		}
		errs = append(errs, err)
		c.probes = c.probes[1:]
	}
	if len(errs) == 0 {
		return 0, domain.ErrIdleUnsupported
	}
	return 0, errors.Join(errs...)
}

// NewSessionProbe builds the default probe: the ScreenSaver interface on
// conn when available, then xprintidle.
func NewSessionProbe(conn *dbus.Conn) *Chain {
	var probes []ports.IdleProbe
	if conn != nil {
		probes = append(probes, NewScreenSaverProbe(conn))
	}
	if x, err := NewXPrintIdleProbe(); err == nil {
		probes = append(probes, x)
	}
	return NewChain(probes...)
}
