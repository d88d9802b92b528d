package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingSweeper struct {
	calls atomic.Int32
	seen  time.Time
}

func (s *countingSweeper) Sweep(_ context.Context, now time.Time) int {
	s.calls.Add(1)
	s.seen = now
	return 3
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler(quietLogger())

	var order []string
	scheduler.AddJob("first", time.Hour, func(context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	scheduler.AddJob("second", time.Hour, func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	scheduler.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestScheduler_StartStop(t *testing.T) {
	scheduler := NewScheduler(quietLogger())

	var runs atomic.Int32
	scheduler.AddJob("tick", 5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	scheduler.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	scheduler.Stop()

	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestSweepJobs(t *testing.T) {
	now := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	jobs := NewSweepJobs(clock.Func(func() time.Time { return now }), quietLogger())

	s := &countingSweeper{}
	require.True(t, jobs.Add("gps_sessions", s))
	assert.False(t, jobs.Add("redis", struct{}{}))

	scheduler := NewScheduler(quietLogger())
	jobs.RegisterJobs(scheduler, time.Minute)
	scheduler.RunOnce(context.Background())

	assert.Equal(t, int32(1), s.calls.Load())
	assert.Equal(t, now, s.seen)
}
