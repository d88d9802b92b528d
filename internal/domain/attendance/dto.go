package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
)

// ========================================
// LOOKUP DTOs
// ========================================

type LookupRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *LookupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LookupResponse struct {
	Found        bool           `json:"found"`
	RemarkLocked bool           `json:"remark_locked"`
	Attendance   AttendanceForm `json:"attendance"`
	ShiftDay     *ShiftDayInfo  `json:"shift_day,omitempty"`
}

// AttendanceForm is the editable representation of a record. StartTime and
// EndTime are "2006-01-02T15:04" for field workers and "15:04" for office.
type AttendanceForm struct {
	ID               *string `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	AttendanceType   int     `json:"attendance_type"`
	ShiftID          *string `json:"shift_id"`
	StartLocationID  *string `json:"start_location_id"`
	EndLocationID    *string `json:"end_location_id"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	RemarkText       string  `json:"remark_text"`
	RemarkStatus     *int    `json:"remark_status"`
	ApprovalStatus   *string `json:"approval_status,omitempty"`
	RemarkApprovedBy *string `json:"remark_approved_by,omitempty"`
}

type ShiftDayInfo struct {
	ShiftID      string `json:"shift_id"`
	ShiftName    string `json:"shift_name"`
	DayOfWeek    string `json:"day_of_week"`
	ClockInTime  string `json:"clock_in_time"`
	ClockOutTime string `json:"clock_out_time"`
}

// ========================================
// SUBMIT DTOs
// ========================================

// SubmitRequest creates or corrects one employee's attendance for one date.
type SubmitRequest struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	AttendanceType  *int    `json:"attendance_type"`
	ShiftID         *string `json:"shift_id"`
	StartLocationID *string `json:"start_location_id,omitempty"`
	EndLocationID   *string `json:"end_location_id,omitempty"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	RemarkText      *string `json:"remark_text"`
	RemarkStatus    *int    `json:"remark_status"`
}

// Validate checks presence and shape of the fields. Missing mandatory fields
// are reported together and also match ErrRequiredFieldsIncomplete.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	missing := false

	required := func(field string) {
		missing = true
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		required("employee_id")
	}

	if validator.IsEmpty(r.Date) {
		required("date")
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.AttendanceType == nil {
		required("attendance_type")
	} else if !Type(*r.AttendanceType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_type",
			Message: "attendance_type must be 1 (field worker) or 2 (office)",
		})
	}

	if validator.IsEmptyPtr(r.ShiftID) {
		required("shift_id")
	}

	if validator.IsEmptyPtr(r.StartTime) {
		required("start_time")
	}

	if validator.IsEmptyPtr(r.RemarkText) {
		required("remark_text")
	}

	if r.RemarkStatus == nil {
		required("remark_status")
	} else if !RemarkStatus(*r.RemarkStatus).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "remark_status",
			Message: "remark_status must be one of: 1 (manual), 2 (excused late), 3 (excused early leave), 4 (leave)",
		})
	}

	if r.AttendanceType != nil && Type(*r.AttendanceType) == TypeFieldWorker && validator.IsEmptyPtr(r.StartLocationID) {
		required("start_location_id")
	}

	if len(errs) == 0 {
		return nil
	}
	if missing {
		return fmt.Errorf("%w: %w", ErrRequiredFieldsIncomplete, errs)
	}
	return errs
}

type SubmitResponse struct {
	ID         string         `json:"id"`
	Created    bool           `json:"created"`
	Message    string         `json:"message"`
	Attendance AttendanceForm `json:"attendance"`
}
