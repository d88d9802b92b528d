package anomaly

import (
	"context"
	"time"
)

// StateRepository keeps detector state per geolocation session.
type StateRepository interface {
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
