package anomaly

import "context"

// Service runs the fake GPS heuristic for geolocation sessions.
type Service interface {
	StartSession(ctx context.Context) (StartSessionResponse, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
	EndSession(ctx context.Context, sessionID string) error
}
