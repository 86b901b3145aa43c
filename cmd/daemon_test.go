package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xvierd/breaktime/internal/config"
)

// stubServer is a ports.RemoteServer whose Start either fails at once or
// blocks until its context is done.
type stubServer struct {
	err     error
	started chan struct{}
}

func (s *stubServer) Start(ctx context.Context) error {
	close(s.started)
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return nil
}

func (s *stubServer) Stop() error     { return nil }
func (s *stubServer) IsRunning() bool { return false }

func TestDaemon_ApplyConfig(t *testing.T) {
	d := newDaemon(config.DefaultConfig(), nil)

	cfg := config.DefaultConfig()
	cfg.ShortBreak.IntervalMinutes = 5
	cfg.StrictMode = true
	cfg.Notifications.Enabled = false
	d.applyConfig(cfg)

	got := d.timer.Config()
	if got.Short.Interval != 5*time.Minute {
		t.Errorf("short interval = %s, want 5m", got.Short.Interval)
	}
	if !got.StrictMode {
		t.Error("strict mode should be applied")
	}
	if d.notifier.IsEnabled() {
		t.Error("notifications should be disabled")
	}
}

func TestDaemon_RunStopsOnCancel(t *testing.T) {
	d := newDaemon(config.DefaultConfig(), nil)
	server := &stubServer{started: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- d.run(ctx, server) }()

	<-server.started
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}

func TestDaemon_RunFailsWithServer(t *testing.T) {
	d := newDaemon(config.DefaultConfig(), nil)
	boom := errors.New("name taken")
	server := &stubServer{err: boom, started: make(chan struct{})}

	done := make(chan error, 1)
	go func() { done <- d.run(context.Background(), server) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Errorf("run() error = %v, want %v", err, boom)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run() should stop the scheduler when the server fails")
	}
}
