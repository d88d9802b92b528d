package hrisapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
)

type attendanceDTO struct {
	ID               string     `json:"id,omitempty"`
	CompanyID        string     `json:"company_id"`
	EmployeeID       string     `json:"employee_id"`
	Date             string     `json:"date"`
	AttendanceType   int        `json:"attendance_type"`
	ShiftID          string     `json:"shift_id"`
	StartLocationID  *string    `json:"start_location_id"`
	EndLocationID    *string    `json:"end_location_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	RemarkText       string     `json:"remark_text"`
	RemarkStatus     int        `json:"remark_status"`
	ApprovalStatus   string     `json:"approval_status,omitempty"`
	RemarkApprovedBy *string    `json:"remark_approved_by,omitempty"`
	RemarkApprovedAt *time.Time `json:"remark_approved_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toAttendanceDTO(a attendance.Attendance) attendanceDTO {
	return attendanceDTO{
		ID:               a.ID,
		CompanyID:        a.CompanyID,
		EmployeeID:       a.EmployeeID,
		Date:             a.Date.Format("2006-01-02"),
		AttendanceType:   int(a.AttendanceType),
		ShiftID:          a.ShiftID,
		StartLocationID:  a.StartLocationID,
		EndLocationID:    a.EndLocationID,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		RemarkText:       a.RemarkText,
		RemarkStatus:     int(a.RemarkStatus),
		ApprovalStatus:   a.ApprovalStatus,
		RemarkApprovedBy: a.RemarkApprovedBy,
		RemarkApprovedAt: a.RemarkApprovedAt,
	}
}

func (d attendanceDTO) toEntity() (attendance.Attendance, error) {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("%w: invalid attendance date %q", ErrUnexpectedResponse, d.Date)
	}
	return attendance.Attendance{
		ID:               d.ID,
		CompanyID:        d.CompanyID,
		EmployeeID:       d.EmployeeID,
		Date:             date,
		AttendanceType:   attendance.Type(d.AttendanceType),
		ShiftID:          d.ShiftID,
		StartLocationID:  d.StartLocationID,
		EndLocationID:    d.EndLocationID,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		RemarkText:       d.RemarkText,
		RemarkStatus:     attendance.RemarkStatus(d.RemarkStatus),
		ApprovalStatus:   d.ApprovalStatus,
		RemarkApprovedBy: d.RemarkApprovedBy,
		RemarkApprovedAt: d.RemarkApprovedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

type attendanceRepository struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{
			"employee_id": employeeID,
			"date":        date.Format("2006-01-02"),
			"company_id":  companyID,
		}).
		Get("/attendances/by-employee-date")

	var dto attendanceDTO
	if err := r.client.decode(resp, err, &dto); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	att, err := dto.toEntity()
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	body := toAttendanceDTO(newAttendance)
	body.ID = ""

	resp, err := r.client.request(ctx).
		SetBody(body).
		Post("/attendances")

	var dto attendanceDTO
	if err := r.client.decode(resp, err, &dto); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	if dto.ID == "" {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w: missing id", ErrUnexpectedResponse)
	}

	created := newAttendance
	created.ID = dto.ID
	created.CreatedAt = dto.CreatedAt
	created.UpdatedAt = dto.UpdatedAt
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	resp, err := r.client.request(ctx).
		SetPathParam("id", att.ID).
		SetBody(toAttendanceDTO(att)).
		Put("/attendances/{id}")

	if err := r.client.decode(resp, err, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return fmt.Errorf("attendance with id %s: %w", att.ID, attendance.ErrAttendanceNotFound)
		}
		return fmt.Errorf("failed to update attendance with id %s: %w", att.ID, err)
	}
	return nil
}
