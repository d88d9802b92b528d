package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/go-redis/redis/v8"
)

const anomalyStateKeyPrefix = "gps:session:"

type anomalyStateRepository struct {
	client *redis.Client
}

func NewAnomalyStateRepository(client *redis.Client) anomaly.StateRepository {
	return &anomalyStateRepository{client: client}
}

func anomalyStateKey(sessionID string) string {
	return anomalyStateKeyPrefix + sessionID
}

// Get implements anomaly.StateRepository.
func (r *anomalyStateRepository) Get(ctx context.Context, sessionID string) (anomaly.State, error) {
	raw, err := r.client.Get(ctx, anomalyStateKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return anomaly.State{}, anomaly.ErrSessionNotFound
		}
		return anomaly.State{}, fmt.Errorf("failed to get gps session state: %w", err)
	}

	var state anomaly.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return anomaly.State{}, fmt.Errorf("failed to decode gps session state: %w", err)
	}
	return state, nil
}

// Save implements anomaly.StateRepository.
func (r *anomalyStateRepository) Save(ctx context.Context, sessionID string, state anomaly.State, ttl time.Duration) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode gps session state: %w", err)
	}

	if err := r.client.Set(ctx, anomalyStateKey(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save gps session state: %w", err)
	}
	return nil
}

// Delete implements anomaly.StateRepository.
func (r *anomalyStateRepository) Delete(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, anomalyStateKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete gps session state: %w", err)
	}
	if n == 0 {
		return anomaly.ErrSessionNotFound
	}
	return nil
}
