package domain

import "github.com/google/uuid"

// NewBreakID creates the identifier of one break occurrence. It is a log
// correlation ID: the "break_id" attribute ties a break's start and finish
// lines together. No control surface exposes it.
func NewBreakID() string {
	return uuid.New().String()
}
