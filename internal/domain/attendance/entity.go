package attendance

import (
	"strings"
	"time"
)

// Type decides which location fields a record carries.
type Type int

const (
	TypeFieldWorker Type = 1
	TypeOffice      Type = 2
)

func (t Type) IsValid() bool {
	return t == TypeFieldWorker || t == TypeOffice
}

func (t Type) String() string {
	switch t {
	case TypeFieldWorker:
		return "field_worker"
	case TypeOffice:
		return "office"
	default:
		return "unknown"
	}
}

type RemarkStatus int

const (
	RemarkManual            RemarkStatus = 1
	RemarkExcusedLate       RemarkStatus = 2
	RemarkExcusedEarlyLeave RemarkStatus = 3
	RemarkLeave             RemarkStatus = 4
)

func (s RemarkStatus) IsValid() bool {
	return s >= RemarkManual && s <= RemarkLeave
}

// Approval statuses
const (
	StatusWaitingApproval = "waiting_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Placement is either OfficePlacement or FieldPlacement.
type Placement interface {
	Type() Type
	isPlacement()
}

// OfficePlacement records are verified by face at a fixed office; they never carry locations.
type OfficePlacement struct{}

func (OfficePlacement) Type() Type   { return TypeOffice }
func (OfficePlacement) isPlacement() {}

// FieldPlacement records start at a registered location and may end at another.
type FieldPlacement struct {
	StartLocationID string
	EndLocationID   *string
}

func (FieldPlacement) Type() Type   { return TypeFieldWorker }
func (FieldPlacement) isPlacement() {}

type Remark struct {
	Text   string
	Status RemarkStatus
}

// Record is an attendance entry whose location fields agree with its type.
type Record struct {
	ID               *string
	CompanyID        string
	EmployeeID       string
	Date             time.Time
	ShiftID          string
	Placement        Placement
	StartTime        time.Time
	EndTime          *time.Time
	Remark           Remark
	ApprovalStatus   string
	RemarkApprovedBy *string
	RemarkApprovedAt *time.Time
}

// Attendance is the stored row.
type Attendance struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	Date             time.Time
	AttendanceType   Type
	ShiftID          string
	StartLocationID  *string
	EndLocationID    *string
	StartTime        time.Time
	EndTime          *time.Time
	RemarkText       string
	RemarkStatus     RemarkStatus
	ApprovalStatus   string
	RemarkApprovedBy *string
	RemarkApprovedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Placement rebuilds the variant from the nullable location columns.
func (a Attendance) Placement() (Placement, error) {
	switch a.AttendanceType {
	case TypeOffice:
		if a.StartLocationID != nil || a.EndLocationID != nil {
			return nil, ErrInvalidPlacement
		}
		return OfficePlacement{}, nil
	case TypeFieldWorker:
		if a.StartLocationID == nil || strings.TrimSpace(*a.StartLocationID) == "" {
			return nil, ErrInvalidPlacement
		}
		return FieldPlacement{StartLocationID: *a.StartLocationID, EndLocationID: a.EndLocationID}, nil
	default:
		return nil, ErrInvalidAttendanceType
	}
}

func (a Attendance) Record() (Record, error) {
	placement, err := a.Placement()
	if err != nil {
		return Record{}, err
	}

	var id *string
	if a.ID != "" {
		v := a.ID
		id = &v
	}

	return Record{
		ID:               id,
		CompanyID:        a.CompanyID,
		EmployeeID:       a.EmployeeID,
		Date:             a.Date,
		ShiftID:          a.ShiftID,
		Placement:        placement,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		Remark:           Remark{Text: a.RemarkText, Status: a.RemarkStatus},
		ApprovalStatus:   a.ApprovalStatus,
		RemarkApprovedBy: a.RemarkApprovedBy,
		RemarkApprovedAt: a.RemarkApprovedAt,
	}, nil
}

// Row flattens the record for storage.
func (r Record) Row() Attendance {
	row := Attendance{
		CompanyID:        r.CompanyID,
		EmployeeID:       r.EmployeeID,
		Date:             r.Date,
		ShiftID:          r.ShiftID,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		RemarkText:       r.Remark.Text,
		RemarkStatus:     r.Remark.Status,
		ApprovalStatus:   r.ApprovalStatus,
		RemarkApprovedBy: r.RemarkApprovedBy,
		RemarkApprovedAt: r.RemarkApprovedAt,
	}
	if r.ID != nil {
		row.ID = *r.ID
	}

	switch p := r.Placement.(type) {
	case FieldPlacement:
		start := p.StartLocationID
		row.AttendanceType = TypeFieldWorker
		row.StartLocationID = &start
		row.EndLocationID = p.EndLocationID
	case OfficePlacement:
		row.AttendanceType = TypeOffice
	}
	return row
}
