package anomaly

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/utils"
)

// Analyze classifies sample against the previous one held in state and returns
// the next state. It has no side effects; the caller owns the state.
//
// The first sample of a session is never suspicious. A non-positive elapsed
// time counts as infinite speed.
func Analyze(state anomaly.State, sample anomaly.LocationSample, policy anomaly.BaselinePolicy) (anomaly.Result, *anomaly.Movement, anomaly.State) {
	result := anomaly.Result{Reasons: []string{}}

	if state.Last == nil {
		current := sample
		return result, nil, anomaly.State{Last: &current}
	}

	prev := *state.Last
	distance := utils.CalculateHaversineDistance(prev.Latitude, prev.Longitude, sample.Latitude, sample.Longitude)
	elapsed := sample.Timestamp.Sub(prev.Timestamp).Seconds()
	speed := utils.SpeedKMH(distance, elapsed)

	if distance > anomaly.TeleportDistanceMeters && elapsed < anomaly.TeleportWindow.Seconds() {
		result.Reasons = append(result.Reasons, anomaly.ReasonExtremeJump)
	}

	if speed > anomaly.MaxSpeedKMH {
		result.Reasons = append(result.Reasons, speedReason(speed))
	}

	if sample.Accuracy < anomaly.MinAccuracyMeters || sample.Accuracy > anomaly.MaxAccuracyMeters {
		result.Reasons = append(result.Reasons, accuracyReason(sample.Accuracy))
	}

	result.Suspicious = len(result.Reasons) > 0

	movement := &anomaly.Movement{
		DistanceMeters: distance,
		ElapsedSeconds: elapsed,
		SpeedKMH:       speed,
	}

	if result.Suspicious && policy == anomaly.BaselineKeepOnSuspicious {
		return result, movement, state
	}

	current := sample
	return result, movement, anomaly.State{Last: &current}
}

func speedReason(speed float64) string {
	if math.IsInf(speed, 1) {
		return "improbable speed (infinite km/h)"
	}
	return fmt.Sprintf("improbable speed (%.1f km/h)", speed)
}

func accuracyReason(accuracy float64) string {
	return fmt.Sprintf("suspicious accuracy (%s m)", strconv.FormatFloat(accuracy, 'f', -1, 64))
}
