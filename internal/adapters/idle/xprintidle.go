package idle

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// XPrintIdleProbe shells out to xprintidle, which works on X11 sessions
// whose desktop does not implement the ScreenSaver interface.
type XPrintIdleProbe struct {
	path string
}

var _ ports.IdleProbe = (*XPrintIdleProbe)(nil)

// NewXPrintIdleProbe locates xprintidle on PATH.
func NewXPrintIdleProbe() (*XPrintIdleProbe, error) {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return nil, fmt.Errorf("%w: xprintidle not found", domain.ErrIdleUnsupported)
	}
	return &XPrintIdleProbe{path: path}, nil
}

// IdleTime runs xprintidle and parses its millisecond output.
func (p *XPrintIdleProbe) IdleTime(ctx context.Context) (time.Duration, error) {
	output, err := exec.CommandContext(ctx, p.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseMillis(string(output))
}

func parseMillis(value string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
