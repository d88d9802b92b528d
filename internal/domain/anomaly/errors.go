package anomaly

import "errors"

var (
	ErrSessionNotFound = errors.New("gps session not found")
)
