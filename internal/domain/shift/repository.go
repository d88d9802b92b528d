package shift

import "context"

type ShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	List(ctx context.Context, companyID string) ([]Shift, error)
}
