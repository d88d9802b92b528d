package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
)

// Sweeper drops entries that expired at or before now and reports how many.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) int
}

// SweepJobs evicts expired gps sessions and submit marks from in-process stores.
// Redis expires keys on its own and needs no job.
type SweepJobs struct {
	clock    clock.Clock
	logger   *slog.Logger
	sweepers map[string]Sweeper
}

func NewSweepJobs(c clock.Clock, logger *slog.Logger) *SweepJobs {
	if c == nil {
		c = clock.System
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SweepJobs{clock: c, logger: logger, sweepers: make(map[string]Sweeper)}
}

// Add registers s under name when it can sweep; other stores are ignored.
func (j *SweepJobs) Add(name string, store any) bool {
	s, ok := store.(Sweeper)
	if ok {
		j.sweepers[name] = s
	}
	return ok
}

func (j *SweepJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	for name, s := range j.sweepers {
		scheduler.AddJob("sweep_"+name, interval, j.sweep(name, s))
	}
}

func (j *SweepJobs) sweep(name string, s Sweeper) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if removed := s.Sweep(ctx, j.clock.Now()); removed > 0 {
			j.logger.Debug("expired entries swept", slog.String("store", name), slog.Int("removed", removed))
		}
		return nil
	}
}
