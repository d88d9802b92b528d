package employee

// Profile is the slice of an employee record that attendance reconciliation needs.
type Profile struct {
	ID                string
	CompanyID         string
	FullName          string
	HasRegisteredFace bool
	AssignedShiftID   *string
	Status            EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
