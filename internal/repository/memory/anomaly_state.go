package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
)

type stateEntry struct {
	state     anomaly.State
	expiresAt time.Time
}

type anomalyStateRepository struct {
	clock   clock.Clock
	mu      sync.RWMutex
	entries map[string]stateEntry
}

func NewAnomalyStateRepository(c clock.Clock) anomaly.StateRepository {
	if c == nil {
		c = clock.System
	}
	return &anomalyStateRepository{clock: c, entries: make(map[string]stateEntry)}
}

// Get implements anomaly.StateRepository.
func (r *anomalyStateRepository) Get(_ context.Context, sessionID string) (anomaly.State, error) {
	r.mu.RLock()
	entry, ok := r.entries[sessionID]
	r.mu.RUnlock()

	if !ok || !r.clock.Now().Before(entry.expiresAt) {
		return anomaly.State{}, anomaly.ErrSessionNotFound
	}
	return copyState(entry.state), nil
}

// Save implements anomaly.StateRepository.
func (r *anomalyStateRepository) Save(_ context.Context, sessionID string, state anomaly.State, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.evictExpired(now)
	r.entries[sessionID] = stateEntry{state: copyState(state), expiresAt: now.Add(ttl)}
	return nil
}

// Delete implements anomaly.StateRepository.
func (r *anomalyStateRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok || !r.clock.Now().Before(entry.expiresAt) {
		delete(r.entries, sessionID)
		return anomaly.ErrSessionNotFound
	}
	delete(r.entries, sessionID)
	return nil
}

// Sweep drops sessions that expired at or before now.
func (r *anomalyStateRepository) Sweep(_ context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictExpired(now)
}

func (r *anomalyStateRepository) evictExpired(now time.Time) int {
	removed := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func copyState(s anomaly.State) anomaly.State {
	if s.Last == nil {
		return anomaly.State{}
	}
	last := *s.Last
	return anomaly.State{Last: &last}
}
