package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/breaktime/internal/domain"
)

func newTestPreBreak(t *testing.T) (*PreBreakNotifier, *TimerService, *fakeClock, *recordingNotifier) {
	t.Helper()
	timer, clock := newTestTimer(t)
	rec := &recordingNotifier{}
	return NewPreBreakNotifier(timer, rec, time.Second), timer, clock, rec
}

func TestPreBreakNotifier_NotifiesOncePerApproach(t *testing.T) {
	n, timer, clock, rec := newTestPreBreak(t)
	ctx := context.Background()

	clock.Advance(20*time.Minute - 11*time.Second)
	n.Check(ctx)
	assert.Empty(t, rec.Sent())

	clock.Advance(time.Second)
	n.Check(ctx)
	require.Len(t, rec.Sent(), 1)
	assert.Equal(t, "Short break coming up", rec.Sent()[0].Title)
	assert.Equal(t, "Short break in 10 seconds", rec.Sent()[0].Body)
	assert.True(t, n.Notified(domain.BreakShort))

	clock.Advance(time.Second)
	n.Check(ctx)
	assert.Len(t, rec.Sent(), 1)

	timer.PostponeBreak(domain.BreakShort)
	n.Check(ctx)
	assert.False(t, n.Notified(domain.BreakShort))

	clock.Advance(5 * time.Minute)
	n.Check(ctx)
	assert.Len(t, rec.Sent(), 2)
}

func TestPreBreakNotifier_HysteresisBand(t *testing.T) {
	n, timer, clock, rec := newTestPreBreak(t)
	ctx := context.Background()

	clock.Advance(20*time.Minute - 10*time.Second)
	n.Check(ctx)
	require.Len(t, rec.Sent(), 1)

	// Pushing the deadline out by less than the hysteresis keeps the flag.
	cfg := timer.Config()
	cfg.PostponeDuration = 5 * time.Second
	timer.UpdateConfig(cfg)
	timer.PostponeBreak(domain.BreakShort)

	n.Check(ctx)
	assert.True(t, n.Notified(domain.BreakShort))

	clock.Advance(5 * time.Second)
	n.Check(ctx)
	assert.Len(t, rec.Sent(), 1)
}

func TestPreBreakNotifier_SkipsDisabledAndPaused(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		n, timer, clock, rec := newTestPreBreak(t)
		cfg := timer.Config()
		cfg.Short.Enabled = false
		timer.UpdateConfig(cfg)

		clock.Advance(20*time.Minute - 5*time.Second)
		n.Check(context.Background())
		assert.Empty(t, rec.Sent())
	})

	t.Run("paused", func(t *testing.T) {
		n, timer, clock, rec := newTestPreBreak(t)
		clock.Advance(20*time.Minute - 5*time.Second)
		timer.Pause()

		n.Check(context.Background())
		assert.Empty(t, rec.Sent())

		timer.Resume()
		n.Check(context.Background())
		assert.Len(t, rec.Sent(), 1)
	})
}

func TestPreBreakNotifier_SkipsOverdue(t *testing.T) {
	n, _, clock, rec := newTestPreBreak(t)

	clock.Advance(20*time.Minute + 5*time.Second)
	n.Check(context.Background())

	assert.Empty(t, rec.Sent())
}

func TestPreBreakNotifier_IndependentKinds(t *testing.T) {
	n, timer, clock, rec := newTestPreBreak(t)
	ctx := context.Background()

	cfg := timer.Config()
	cfg.Long.Interval = 20 * time.Minute
	timer.UpdateConfig(cfg)
	timer.StartBreak(domain.BreakLong)
	timer.EndBreak()

	clock.Advance(20*time.Minute - 5*time.Second)
	n.Check(ctx)

	sent := rec.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Long break coming up", sent[0].Title)
	assert.Equal(t, "Short break coming up", sent[1].Title)
}
