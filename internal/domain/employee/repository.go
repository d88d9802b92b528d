package employee

import "context"

type EmployeeRepository interface {
	GetProfile(ctx context.Context, id string, companyID string) (Profile, error)
	ListProfiles(ctx context.Context, companyID string) ([]Profile, error)
}
