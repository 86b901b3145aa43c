package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Report(t *testing.T) {
	status := Status{
		State:          InBreak(BreakShort),
		ShortRemaining: -1500 * time.Millisecond,
		LongRemaining:  39*time.Minute + 59*time.Second + 900*time.Millisecond,
	}

	report := status.Report()

	assert.Equal(t, "InBreak:Short", report.State)
	assert.Equal(t, int64(-1), report.ShortRemainingSeconds)
	assert.Equal(t, int64(39*60+59), report.LongRemainingSeconds)
	assert.Equal(t, 39*time.Minute+59*time.Second, report.Remaining(BreakLong))
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{15*time.Minute + 30*time.Second, "15m 30s"},
		{40 * time.Second, "40s"},
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{2 * time.Hour, "120m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.in))
		})
	}
}
