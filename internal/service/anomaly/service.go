package anomaly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
	"github.com/google/uuid"
)

type AnomalyServiceImpl struct {
	anomaly.StateRepository
	clock      clock.Clock
	sessionTTL time.Duration
	policy     anomaly.BaselinePolicy
	logger     *slog.Logger
}

// StartSession implements anomaly.Service.
func (s *AnomalyServiceImpl) StartSession(ctx context.Context) (anomaly.StartSessionResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return anomaly.StartSessionResponse{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	if err := s.StateRepository.Save(ctx, id.String(), anomaly.State{}, s.sessionTTL); err != nil {
		return anomaly.StartSessionResponse{}, fmt.Errorf("failed to start gps session: %w", err)
	}

	return anomaly.StartSessionResponse{SessionID: id.String()}, nil
}

// Analyze implements anomaly.Service.
func (s *AnomalyServiceImpl) Analyze(ctx context.Context, req anomaly.AnalyzeRequest) (anomaly.AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return anomaly.AnalyzeResponse{}, err
	}

	state, err := s.StateRepository.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, anomaly.ErrSessionNotFound) {
			return anomaly.AnalyzeResponse{}, anomaly.ErrSessionNotFound
		}
		return anomaly.AnalyzeResponse{}, fmt.Errorf("failed to load gps session: %w", err)
	}

	timestamp := s.clock.Now()
	if req.Timestamp != nil && *req.Timestamp != "" {
		timestamp, _ = validator.IsValidDateTime(*req.Timestamp)
	}

	sample := anomaly.LocationSample{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Accuracy:  *req.Accuracy,
		Timestamp: timestamp.UTC(),
	}

	result, movement, next := Analyze(state, sample, s.policy)

	if err := s.StateRepository.Save(ctx, req.SessionID, next, s.sessionTTL); err != nil {
		return anomaly.AnalyzeResponse{}, fmt.Errorf("failed to save gps session: %w", err)
	}

	if result.Suspicious {
		s.logger.Warn("suspicious location sample",
			slog.String("session_id", req.SessionID),
			slog.Any("reasons", result.Reasons),
		)
	}

	resp := anomaly.AnalyzeResponse{
		Suspicious: result.Suspicious,
		Reasons:    result.Reasons,
	}
	if movement != nil {
		resp.DistanceMeters = &movement.DistanceMeters
		resp.ElapsedSeconds = &movement.ElapsedSeconds
		if !math.IsInf(movement.SpeedKMH, 0) {
			resp.SpeedKMH = &movement.SpeedKMH
		}
	}
	return resp, nil
}

// EndSession implements anomaly.Service.
func (s *AnomalyServiceImpl) EndSession(ctx context.Context, sessionID string) error {
	if err := s.StateRepository.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, anomaly.ErrSessionNotFound) {
			return anomaly.ErrSessionNotFound
		}
		return fmt.Errorf("failed to end gps session: %w", err)
	}
	return nil
}

func NewAnomalyService(
	stateRepo anomaly.StateRepository,
	c clock.Clock,
	sessionTTL time.Duration,
	policy anomaly.BaselinePolicy,
	logger *slog.Logger,
) anomaly.Service {
	if c == nil {
		c = clock.System
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnomalyServiceImpl{
		StateRepository: stateRepo,
		clock:           c,
		sessionTTL:      sessionTTL,
		policy:          policy,
		logger:          logger,
	}
}
