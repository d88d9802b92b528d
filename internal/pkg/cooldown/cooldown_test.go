package cooldown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type mapStore struct {
	mu   sync.Mutex
	data map[string]time.Time
	err  error
}

func newMapStore() *mapStore { return &mapStore{data: map[string]time.Time{}} }

func (s *mapStore) LastSubmit(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return time.Time{}, false, s.err
	}
	at, ok := s.data[key]
	return at, ok, nil
}

func (s *mapStore) MarkSubmit(_ context.Context, key string, at time.Time, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = at
	return nil
}

func TestGuard_CheckAndMark(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)}
	guard := NewGuard(clock, newMapStore(), 5*time.Second)
	key := Key("company-1", "emp-1", "2024-05-06")

	require.NoError(t, guard.Check(ctx, key))
	require.NoError(t, guard.Mark(ctx, key))

	clock.now = clock.now.Add(2 * time.Second)
	err := guard.Check(ctx, key)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooSoon)

	var tooSoon *TooSoonError
	require.True(t, errors.As(err, &tooSoon))
	assert.Equal(t, 3*time.Second, tooSoon.RetryAfter)

	clock.now = clock.now.Add(3 * time.Second)
	assert.NoError(t, guard.Check(ctx, key))
}

func TestGuard_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	guard := NewGuard(clock, newMapStore(), time.Minute)

	require.NoError(t, guard.Mark(ctx, Key("c", "emp-1", "2024-05-06")))
	assert.NoError(t, guard.Check(ctx, Key("c", "emp-2", "2024-05-06")))
	assert.NoError(t, guard.Check(ctx, Key("c", "emp-1", "2024-05-07")))
}

func TestGuard_ZeroWindowDisabled(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	guard := NewGuard(nil, store, 0)

	require.NoError(t, guard.Mark(ctx, "k"))
	assert.NoError(t, guard.Check(ctx, "k"))
	assert.Empty(t, store.data)
}

func TestGuard_StoreError(t *testing.T) {
	store := newMapStore()
	store.err = errors.New("connection refused")
	guard := NewGuard(nil, store, time.Second)

	err := guard.Check(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooSoon)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "submit:a:b:c", Key("a", "b", "c"))
}
