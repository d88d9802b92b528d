package shift

import "time"

// Shift defines clock times per working day. Only Monday to Saturday carry entries.
type Shift struct {
	ID        string
	CompanyID string
	Name      string
	Days      map[time.Weekday]Day
}

// Day holds "15:04" clock times.
type Day struct {
	ClockInTime  string
	ClockOutTime string
}

// IsWorkingWeekday reports whether a shift may define an entry for day.
func IsWorkingWeekday(day time.Weekday) bool {
	return day >= time.Monday && day <= time.Saturday
}

// DayEntry returns the entry for day. Sunday never has one.
func (s Shift) DayEntry(day time.Weekday) (Day, bool) {
	if !IsWorkingWeekday(day) {
		return Day{}, false
	}
	d, ok := s.Days[day]
	return d, ok
}
