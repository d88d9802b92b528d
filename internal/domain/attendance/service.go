package attendance

import (
	"context"
)

// ReconciliationService inspects and corrects a single employee's attendance for one date.
type ReconciliationService interface {
	// Lookup loads the record for employee+date or seeds defaults when none exists
	Lookup(ctx context.Context, req LookupRequest) (LookupResponse, error)

	// Submit validates and upserts a manual or corrected record
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
}
