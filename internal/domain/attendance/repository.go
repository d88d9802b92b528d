package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when the employee has no row for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// Create inserts a new record and returns it with its generated ID
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// Update overwrites an existing record identified by attendance.ID
	Update(ctx context.Context, attendance Attendance) error
}

// Transactor runs fn so that the repository calls made with the context it
// receives share one unit of work. An error from fn discards that work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
