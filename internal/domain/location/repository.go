package location

import "context"

type LocationRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Location, error)
	List(ctx context.Context, companyID string) ([]Location, error)
}
