package anomaly

import "time"

// Thresholds of the fake GPS heuristic.
const (
	TeleportDistanceMeters = 500.0
	TeleportWindow         = 10 * time.Second
	MaxSpeedKMH            = 120.0
	MinAccuracyMeters      = 5.0
	MaxAccuracyMeters      = 200.0
)

// Reasons
const (
	ReasonExtremeJump = "extreme location jump"
)

// LocationSample is one geolocation reading. Accuracy is in meters.
type LocationSample struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// Result is produced fresh for every analyzed sample.
type Result struct {
	Suspicious bool     `json:"suspicious"`
	Reasons    []string `json:"reasons"`
}

// Movement describes the step from the previous sample, when there was one.
type Movement struct {
	DistanceMeters float64
	ElapsedSeconds float64
	SpeedKMH       float64
}

// State is the detector memory for one geolocation session: the last sample.
type State struct {
	Last *LocationSample `json:"last,omitempty"`
}

// BaselinePolicy decides whether a flagged sample becomes the next reference point.
type BaselinePolicy int

const (
	// BaselineAlwaysAdvance stores every sample, flagged or not.
	BaselineAlwaysAdvance BaselinePolicy = iota
	// BaselineKeepOnSuspicious keeps the previous reference when a sample is flagged.
	BaselineKeepOnSuspicious
)
