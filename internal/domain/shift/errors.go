package shift

import "errors"

var (
	ErrShiftNotFound  = errors.New("shift not found")
	ErrSundayEntry    = errors.New("shift entries are limited to monday through saturday")
	ErrInvalidDayTime = errors.New("invalid shift clock time")
)
