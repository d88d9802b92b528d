// Package cooldown rejects repeated submissions of the same form within a window.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
)

var ErrTooSoon = errors.New("submission repeated too soon")

// TooSoonError carries how long the caller has to wait.
type TooSoonError struct {
	RetryAfter time.Duration
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrTooSoon.Error(), e.RetryAfter.Round(time.Second))
}

func (e *TooSoonError) Is(target error) bool {
	return target == ErrTooSoon
}

// Store persists the last submission instant per key.
type Store interface {
	// LastSubmit returns ok=false when no submission is recorded for key.
	LastSubmit(ctx context.Context, key string) (at time.Time, ok bool, err error)
	MarkSubmit(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}

type Guard struct {
	clock  clock.Clock
	store  Store
	window time.Duration
}

// NewGuard returns a guard; a zero window disables it.
func NewGuard(c clock.Clock, store Store, window time.Duration) *Guard {
	if c == nil {
		c = clock.System
	}
	return &Guard{clock: c, store: store, window: window}
}

// Check returns a *TooSoonError when key was marked within the window.
func (g *Guard) Check(ctx context.Context, key string) error {
	if g == nil || g.window <= 0 || g.store == nil {
		return nil
	}

	last, ok, err := g.store.LastSubmit(ctx, key)
	if err != nil {
		return fmt.Errorf("read last submit for %s: %w", key, err)
	}
	if !ok {
		return nil
	}

	elapsed := g.clock.Now().Sub(last)
	if elapsed >= 0 && elapsed < g.window {
		return &TooSoonError{RetryAfter: g.window - elapsed}
	}
	return nil
}

// Mark records a submission for key at the current clock time.
func (g *Guard) Mark(ctx context.Context, key string) error {
	if g == nil || g.window <= 0 || g.store == nil {
		return nil
	}
	if err := g.store.MarkSubmit(ctx, key, g.clock.Now(), g.window); err != nil {
		return fmt.Errorf("mark submit for %s: %w", key, err)
	}
	return nil
}

// Key joins parts into a store key.
func Key(parts ...string) string {
	key := "submit"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
