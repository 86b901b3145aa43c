package ports

import (
	"context"
	"time"
)

// IdleProbe reports how long the user has been inactive.
// This is a driven port (implemented by adapters). Implementations must
// honour ctx deadlines; callers treat any error as "not idle".
type IdleProbe interface {
	IdleTime(ctx context.Context) (time.Duration, error)
}

// Notifier is a fire-and-forget desktop notification sink.
// This is a driven port (implemented by adapters). Implementations must not
// block the caller and are responsible for logging their own failures.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}
