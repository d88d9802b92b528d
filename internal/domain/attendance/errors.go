package attendance

import "errors"

// Attendance domain errors
var (
	// Validation errors
	ErrRequiredFieldsIncomplete = errors.New("required fields incomplete")
	ErrSundayNotAllowed         = errors.New("manual attendance is not allowed on sunday")
	ErrStartTooEarly            = errors.New("start time is more than 24 hours before the attendance date")
	ErrRemarkProtected          = errors.New("remark has been reviewed and cannot be changed")
	ErrInvalidPlacement         = errors.New("location fields do not match the attendance type")
	ErrInvalidAttendanceType    = errors.New("invalid attendance type")

	// Transport errors
	ErrFetchFailed = errors.New("could not fetch attendance")
	ErrSaveFailed  = errors.New("could not save attendance")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
