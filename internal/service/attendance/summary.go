package attendance

import (
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
)

const clockLayout = "03:04 PM"

// Summarize folds one employee's records into the counters the dashboard
// tables show. Weekends count with holidays; leave days count with
// absences; synthesized fetch-failure records count toward nothing but the
// total.
func Summarize(days []attendance.Day) attendance.Summary {
	var s attendance.Summary
	for _, day := range days {
		switch {
		case day.Status == attendance.StatusPresent:
			s.Present++
			s.TotalHours += workedHours(day)
			if isLateCheckIn(day.CheckInTime) {
				s.Late++
			}
		case day.IsWeekend || day.IsHoliday:
			s.Holidays++
		case day.Status == attendance.StatusAbsent || day.IsLeave:
			s.Absent++
		}
		s.Total++
	}
	return s
}

// SummarizeMonth folds every employee in the map.
func SummarizeMonth(month attendance.Month) map[string]attendance.Summary {
	out := make(map[string]attendance.Summary, len(month))
	for id, days := range month {
		out[id] = Summarize(days)
	}
	return out
}

// workedHours is the check-in to check-out span in hours. Spans crossing
// midnight wrap forward; a missing check-out contributes nothing.
func workedHours(day attendance.Day) float64 {
	in, inOK := parseClock(day.CheckInTime)
	out, outOK := parseClock(day.CheckOutTime)
	if !inOK || !outOK {
		return 0
	}
	span := out.Sub(in)
	if span < 0 {
		span += 24 * time.Hour
	}
	return span.Hours()
}

func isLateCheckIn(checkIn *string) bool {
	in, ok := parseClock(checkIn)
	if !ok {
		return false
	}
	cutoff := time.Date(in.Year(), in.Month(), in.Day(),
		checkInCutoffHour, checkInCutoffMinute, 0, 0, in.Location())
	return in.After(cutoff)
}

func parseClock(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(clockLayout, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
