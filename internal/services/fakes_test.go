package services

import (
	"context"
	"sync"
	"time"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeProbe struct {
	mu    sync.Mutex
	idle  time.Duration
	err   error
	calls int
}

func (p *fakeProbe) IdleTime(ctx context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if _, ok := ctx.Deadline(); !ok {
		panic("idle probe called without a deadline")
	}
	return p.idle, p.err
}

func (p *fakeProbe) set(idle time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle = idle
	p.err = err
}

type notification struct {
	Title string
	Body  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{Title: title, Body: body})
}

func (n *recordingNotifier) Sent() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}
