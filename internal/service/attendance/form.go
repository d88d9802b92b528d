package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
)

const (
	dateLayout          = "2006-01-02"
	fieldDateTimeLayout = "2006-01-02T15:04"
	officeClockLayout   = "15:04"
	maxStartLead        = 24 * time.Hour
)

// formatStamp renders t the way the form edits it for typ.
func formatStamp(t time.Time, typ attendance.Type) string {
	if typ == attendance.TypeOffice {
		return t.UTC().Format(officeClockLayout)
	}
	return t.UTC().Format(fieldDateTimeLayout)
}

// parseStamp turns a form value into an instant. Field workers send a full
// datetime; office values are a time of day anchored to date.
func parseStamp(value string, typ attendance.Type, date time.Time) (time.Time, bool) {
	if typ == attendance.TypeOffice {
		clock, ok := validator.IsValidClock(value)
		if !ok {
			return time.Time{}, false
		}
		return time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), true
	}

	t, ok := validator.IsValidLocalDateTime(value)
	if !ok {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func stampFormatHint(typ attendance.Type) string {
	if typ == attendance.TypeOffice {
		return "HH:MM"
	}
	return "YYYY-MM-DDTHH:MM"
}

func toForm(row attendance.Attendance) attendance.AttendanceForm {
	form := attendance.AttendanceForm{
		EmployeeID:      row.EmployeeID,
		Date:            row.Date.Format(dateLayout),
		AttendanceType:  int(row.AttendanceType),
		StartLocationID: row.StartLocationID,
		EndLocationID:   row.EndLocationID,
		RemarkText:      row.RemarkText,
	}

	if row.ID != "" {
		id := row.ID
		form.ID = &id
	}
	if row.ShiftID != "" {
		shiftID := row.ShiftID
		form.ShiftID = &shiftID
	}
	if !row.StartTime.IsZero() {
		start := formatStamp(row.StartTime, row.AttendanceType)
		form.StartTime = &start
	}
	if row.EndTime != nil {
		end := formatStamp(*row.EndTime, row.AttendanceType)
		form.EndTime = &end
	}
	if row.RemarkStatus.IsValid() {
		status := int(row.RemarkStatus)
		form.RemarkStatus = &status
	}
	if row.ApprovalStatus != "" {
		approval := row.ApprovalStatus
		form.ApprovalStatus = &approval
	}
	form.RemarkApprovedBy = row.RemarkApprovedBy

	return form
}

func nonEmpty(s *string) *string {
	if validator.IsEmptyPtr(s) {
		return nil
	}
	return s
}
