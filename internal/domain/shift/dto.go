package shift

import "time"

type ShiftResponse struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Days []DayResponse `json:"days"`
}

type DayResponse struct {
	DayOfWeek    int    `json:"day_of_week"` // 1=Monday, ..., 6=Saturday
	DayName      string `json:"day_name"`
	ClockInTime  string `json:"clock_in_time"`
	ClockOutTime string `json:"clock_out_time"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{ID: s.ID, Name: s.Name, Days: []DayResponse{}}
	for day := time.Monday; day <= time.Saturday; day++ {
		entry, ok := s.DayEntry(day)
		if !ok {
			continue
		}
		resp.Days = append(resp.Days, DayResponse{
			DayOfWeek:    int(day),
			DayName:      day.String(),
			ClockInTime:  entry.ClockInTime,
			ClockOutTime: entry.ClockOutTime,
		})
	}
	return resp
}
