package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAnomalyStateRepository_RoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewAnomalyStateRepository(client)
	ctx := context.Background()

	ts := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	sample := anomaly.LocationSample{Latitude: -6.2, Longitude: 106.8, Accuracy: 12.5, Timestamp: ts}

	require.NoError(t, repo.Save(ctx, "s1", anomaly.State{Last: &sample}, time.Hour))
	assert.True(t, mr.Exists("gps:session:s1"))
	assert.Equal(t, time.Hour, mr.TTL("gps:session:s1"))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.Last)
	assert.Equal(t, sample.Latitude, got.Last.Latitude)
	assert.Equal(t, sample.Longitude, got.Last.Longitude)
	assert.Equal(t, sample.Accuracy, got.Last.Accuracy)
	assert.True(t, sample.Timestamp.Equal(got.Last.Timestamp))
}

func TestAnomalyStateRepository_EmptyState(t *testing.T) {
	_, client := setupTestRedis(t)
	repo := NewAnomalyStateRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "fresh", anomaly.State{}, time.Minute))

	got, err := repo.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Nil(t, got.Last)
}

func TestAnomalyStateRepository_NotFoundAndExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewAnomalyStateRepository(client)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, anomaly.ErrSessionNotFound)

	require.NoError(t, repo.Save(ctx, "s1", anomaly.State{}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, anomaly.ErrSessionNotFound)
}

func TestAnomalyStateRepository_Delete(t *testing.T) {
	_, client := setupTestRedis(t)
	repo := NewAnomalyStateRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", anomaly.State{}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), anomaly.ErrSessionNotFound)
}

func TestCooldownStore_MarkAndRead(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewCooldownStore(client)
	ctx := context.Background()

	_, ok, err := store.LastSubmit(ctx, "submit:c:e:2024-05-06")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 5, 6, 8, 0, 0, 123, time.UTC)
	require.NoError(t, store.MarkSubmit(ctx, "submit:c:e:2024-05-06", at, 5*time.Second))
	assert.Equal(t, 5*time.Second, mr.TTL("submit:c:e:2024-05-06"))

	got, ok, err := store.LastSubmit(ctx, "submit:c:e:2024-05-06")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(at))

	mr.FastForward(6 * time.Second)
	_, ok, err = store.LastSubmit(ctx, "submit:c:e:2024-05-06")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCooldownStore_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewCooldownStore(client)

	require.NoError(t, mr.Set("submit:bad", "not-a-number"))

	_, _, err := store.LastSubmit(context.Background(), "submit:bad")
	assert.Error(t, err)
}
