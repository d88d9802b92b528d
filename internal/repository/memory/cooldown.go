package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cooldown"
)

type submitMark struct {
	at        time.Time
	expiresAt time.Time
}

type cooldownStore struct {
	mu    sync.Mutex
	marks map[string]submitMark
}

func NewCooldownStore() cooldown.Store {
	return &cooldownStore{marks: make(map[string]submitMark)}
}

// LastSubmit implements cooldown.Store.
func (s *cooldownStore) LastSubmit(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mark, ok := s.marks[key]
	if !ok {
		return time.Time{}, false, nil
	}
	return mark.at, true, nil
}

// MarkSubmit implements cooldown.Store. Marks expire relative to at.
func (s *cooldownStore) MarkSubmit(_ context.Context, key string, at time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(at)
	s.marks[key] = submitMark{at: at, expiresAt: at.Add(ttl)}
	return nil
}

// Sweep drops marks that expired at or before now.
func (s *cooldownStore) Sweep(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictExpired(now)
}

func (s *cooldownStore) evictExpired(now time.Time) int {
	removed := 0
	for k, mark := range s.marks {
		if !now.Before(mark.expiresAt) {
			delete(s.marks, k)
			removed++
		}
	}
	return removed
}
