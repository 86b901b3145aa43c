package notification

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/breaktime/internal/config"
	"github.com/xvierd/breaktime/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testContext(t *testing.T) (context.Context, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	l := logger.New(logger.WithQuiet(), logger.WithWriter(buf))
	return logger.WithLogger(context.Background(), l), buf
}

func TestNotifier_Delivers(t *testing.T) {
	ctx, _ := testContext(t)
	got := make(chan string, 1)
	n := New(config.NotificationConfig{Enabled: true, TimeoutSeconds: 1}).
		WithSender(func(title, message string, _ any) error {
			got <- title + "|" + message
			return nil
		})

	n.Notify(ctx, "Time for a short break!", "rest your eyes")

	select {
	case msg := <-got:
		assert.Equal(t, "Time for a short break!|rest your eyes", msg)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestNotifier_Disabled(t *testing.T) {
	ctx, _ := testContext(t)
	n := New(config.NotificationConfig{Enabled: false, TimeoutSeconds: 1}).
		WithSender(func(string, string, any) error {
			t.Error("sender called while disabled")
			return nil
		})

	assert.False(t, n.IsEnabled())
	n.Notify(ctx, "title", "body")
	time.Sleep(20 * time.Millisecond)
}

func TestNotifier_DoesNotBlockAndLogsFailures(t *testing.T) {
	ctx, buf := testContext(t)
	release := make(chan struct{})
	n := New(config.NotificationConfig{Enabled: true, TimeoutSeconds: 1}).
		WithSender(func(string, string, any) error {
			<-release
			return errors.New("no notification daemon")
		})

	start := time.Now()
	n.Notify(ctx, "title", "body")
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "no notification daemon")
	}, time.Second, 10*time.Millisecond)
}

func TestNotifier_Timeout(t *testing.T) {
	ctx, buf := testContext(t)
	block := make(chan struct{})
	defer close(block)
	n := New(config.NotificationConfig{Enabled: true, TimeoutSeconds: 1}).
		WithSender(func(string, string, any) error {
			<-block
			return nil
		})

	n.Notify(ctx, "slow", "body")

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Notification timed out")
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNotifier_UpdateConfig(t *testing.T) {
	n := New(config.NotificationConfig{Enabled: true, TimeoutSeconds: 1})

	n.UpdateConfig(config.NotificationConfig{Enabled: false, TimeoutSeconds: 1})

	assert.False(t, n.IsEnabled())
}
