package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cooldown"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		message := "Validation failed"
		if errors.Is(err, attendance.ErrRequiredFieldsIncomplete) {
			message = "Required fields incomplete"
		}
		ValidationError(w, message, validationErrs.ToMap())
		return
	}

	var tooSoon *cooldown.TooSoonError
	if errors.As(err, &tooSoon) {
		TooManyRequests(w, "Attendance was just submitted, please wait before submitting again", tooSoon.RetryAfter)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwtauth.ErrNoTokenFound),
		errors.Is(err, jwtauth.ErrUnauthorized),
		errors.Is(err, jwt.ErrMissingClaims),
		errors.Is(err, jwt.ErrCompanyIDMissing),
		errors.Is(err, jwt.ErrUserIDMissing):
		Unauthorized(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSundayNotAllowed):
		RuleViolation(w, "Manual attendance is not allowed on Sunday")
	case errors.Is(err, attendance.ErrStartTooEarly):
		RuleViolation(w, "Start time is more than 24 hours before the attendance date")
	case errors.Is(err, attendance.ErrRemarkProtected):
		Conflict(w, "Remark has been reviewed and can no longer be changed")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrFetchFailed):
		logUpstream(err)
		ServiceUnavailable(w, "Could not fetch attendance")
	case errors.Is(err, attendance.ErrSaveFailed):
		logUpstream(err)
		ServiceUnavailable(w, "Could not save attendance")

	// Directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Anomaly domain errors
	case errors.Is(err, anomaly.ErrSessionNotFound):
		NotFound(w, "GPS session not found")

	// Default
	default:
		slog.Error("unhandled error", slog.Any("error", err))
		InternalServerError(w, "An unexpected error occurred")
	}
}

func logUpstream(err error) {
	slog.Error("attendance store unavailable", slog.Any("error", err))
}
