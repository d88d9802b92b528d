package anomaly

import (
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
)

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

type AnalyzeRequest struct {
	SessionID string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp *string  `json:"timestamp,omitempty"` // RFC3339; defaults to now
}

func (r *AnalyzeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id is required",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if *r.Latitude < -90 || *r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if *r.Longitude < -180 || *r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Accuracy == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy is required",
		})
	} else if *r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be RFC3339",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AnalyzeResponse struct {
	Suspicious     bool     `json:"suspicious"`
	Reasons        []string `json:"reasons"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	ElapsedSeconds *float64 `json:"elapsed_seconds,omitempty"`
	// SpeedKMH is omitted when elapsed time was not positive.
	SpeedKMH *float64 `json:"speed_kmh,omitempty"`
}
