package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, company_id, employee_id, date, attendance_type, shift_id,
	start_location_id, end_location_id, start_time, end_time,
	remark_text, remark_status, approval_status, remark_approved_by, remark_approved_at,
	created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02"), companyID).Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.AttendanceType, &att.ShiftID,
		&att.StartLocationID, &att.EndLocationID, &att.StartTime, &att.EndTime,
		&att.RemarkText, &att.RemarkStatus, &att.ApprovalStatus, &att.RemarkApprovedBy, &att.RemarkApprovedAt,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			company_id, employee_id, date, attendance_type, shift_id,
			start_location_id, end_location_id, start_time, end_time,
			remark_text, remark_status, approval_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.CompanyID,
		newAttendance.EmployeeID,
		newAttendance.Date.Format("2006-01-02"),
		newAttendance.AttendanceType,
		newAttendance.ShiftID,
		newAttendance.StartLocationID,
		newAttendance.EndLocationID,
		newAttendance.StartTime,
		newAttendance.EndTime,
		newAttendance.RemarkText,
		newAttendance.RemarkStatus,
		newAttendance.ApprovalStatus,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// Update implements attendance.AttendanceRepository. Approval columns are
// owned by the review workflow and are never written here.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET shift_id = $1,
			attendance_type = $2,
			start_location_id = $3,
			end_location_id = $4,
			start_time = $5,
			end_time = $6,
			remark_text = $7,
			remark_status = $8,
			updated_at = NOW()
		WHERE id = $9 AND company_id = $10
	`

	tag, err := q.Exec(ctx, query,
		att.ShiftID,
		att.AttendanceType,
		att.StartLocationID,
		att.EndLocationID,
		att.StartTime,
		att.EndTime,
		att.RemarkText,
		att.RemarkStatus,
		att.ID,
		att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance with id %s: %w", att.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attendance with id %s: %w", att.ID, attendance.ErrAttendanceNotFound)
	}

	return nil
}
