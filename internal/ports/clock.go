package ports

import "time"

// Clock provides the current time. Production code uses SystemClock,
// tests inject a manual clock for deterministic behavior.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by the standard time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
