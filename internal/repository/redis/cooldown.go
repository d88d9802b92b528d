package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cooldown"
	"github.com/go-redis/redis/v8"
)

type cooldownStore struct {
	client *redis.Client
}

func NewCooldownStore(client *redis.Client) cooldown.Store {
	return &cooldownStore{client: client}
}

// LastSubmit implements cooldown.Store.
func (s *cooldownStore) LastSubmit(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get last submit: %w", err)
	}

	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid last submit value %q: %w", val, err)
	}
	return time.Unix(0, nanos), true, nil
}

// MarkSubmit implements cooldown.Store.
func (s *cooldownStore) MarkSubmit(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, strconv.FormatInt(at.UnixNano(), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark submit: %w", err)
	}
	return nil
}
