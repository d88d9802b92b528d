package anomaly

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

type failingStateRepo struct{}

func (failingStateRepo) Get(context.Context, string) (anomaly.State, error) {
	return anomaly.State{}, errors.New("connection refused")
}
func (failingStateRepo) Save(context.Context, string, anomaly.State, time.Duration) error {
	return errors.New("connection refused")
}
func (failingStateRepo) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newTestService(now *time.Time, policy anomaly.BaselinePolicy) anomaly.Service {
	c := clock.Func(func() time.Time { return *now })
	return NewAnomalyService(memory.NewAnomalyStateRepository(c), c, time.Hour, policy, nil)
}

func TestAnomalyService_SessionLifecycle(t *testing.T) {
	now := t0
	svc := newTestService(&now, anomaly.BaselineAlwaysAdvance)
	ctx := context.Background()

	started, err := svc.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, started.SessionID)

	first, err := svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: started.SessionID,
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
	})
	require.NoError(t, err)
	assert.False(t, first.Suspicious)
	assert.Empty(t, first.Reasons)
	assert.Nil(t, first.DistanceMeters)

	now = now.Add(time.Second)
	second, err := svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: started.SessionID,
		Latitude:  floatPtr(0.01),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
	})
	require.NoError(t, err)
	assert.True(t, second.Suspicious)
	assert.Len(t, second.Reasons, 2)
	require.NotNil(t, second.ElapsedSeconds)
	assert.Equal(t, 1.0, *second.ElapsedSeconds)
	require.NotNil(t, second.SpeedKMH)

	require.NoError(t, svc.EndSession(ctx, started.SessionID))
	assert.ErrorIs(t, svc.EndSession(ctx, started.SessionID), anomaly.ErrSessionNotFound)

	_, err = svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: started.SessionID,
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
	})
	assert.ErrorIs(t, err, anomaly.ErrSessionNotFound)
}

func TestAnomalyService_ExplicitTimestamp(t *testing.T) {
	now := t0
	svc := newTestService(&now, anomaly.BaselineAlwaysAdvance)
	ctx := context.Background()

	started, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: started.SessionID,
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
		Timestamp: strPtr("2024-05-06T08:00:00Z"),
	})
	require.NoError(t, err)

	// Same timestamp again: zero elapsed time.
	resp, err := svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: started.SessionID,
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
		Timestamp: strPtr("2024-05-06T15:00:00+07:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Suspicious)
	assert.Equal(t, []string{"improbable speed (infinite km/h)"}, resp.Reasons)
	assert.Nil(t, resp.SpeedKMH)
}

func TestAnomalyService_KeepBaselineOnSuspicious(t *testing.T) {
	now := t0
	svc := newTestService(&now, anomaly.BaselineKeepOnSuspicious)
	ctx := context.Background()

	started, err := svc.StartSession(ctx)
	require.NoError(t, err)

	analyze := func(lat float64) anomaly.AnalyzeResponse {
		resp, err := svc.Analyze(ctx, anomaly.AnalyzeRequest{
			SessionID: started.SessionID,
			Latitude:  floatPtr(lat),
			Longitude: floatPtr(0),
			Accuracy:  floatPtr(10),
		})
		require.NoError(t, err)
		return resp
	}

	analyze(0)
	now = now.Add(time.Second)
	assert.True(t, analyze(0.01).Suspicious)

	// Baseline stayed at the origin, so returning there a minute later is quiet.
	now = now.Add(time.Minute)
	resp := analyze(0)
	assert.False(t, resp.Suspicious)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 0, *resp.DistanceMeters, 1e-9)
}

func TestAnomalyService_ValidationError(t *testing.T) {
	now := t0
	svc := newTestService(&now, anomaly.BaselineAlwaysAdvance)

	_, err := svc.Analyze(context.Background(), anomaly.AnalyzeRequest{
		SessionID: "s1",
		Latitude:  floatPtr(91),
		Accuracy:  floatPtr(-1),
		Timestamp: strPtr("yesterday"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("latitude"))
	assert.True(t, verrs.Has("longitude"))
	assert.True(t, verrs.Has("accuracy"))
	assert.True(t, verrs.Has("timestamp"))
}

func TestAnomalyService_StoreFailure(t *testing.T) {
	svc := NewAnomalyService(failingStateRepo{}, nil, time.Hour, anomaly.BaselineAlwaysAdvance, nil)
	ctx := context.Background()

	_, err := svc.StartSession(ctx)
	assert.Error(t, err)

	_, err = svc.Analyze(ctx, anomaly.AnalyzeRequest{
		SessionID: "s1",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
		Accuracy:  floatPtr(10),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, anomaly.ErrSessionNotFound)

	err = svc.EndSession(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, anomaly.ErrSessionNotFound)
}
