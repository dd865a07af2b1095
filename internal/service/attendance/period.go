package attendance

import (
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
)

// FilterByPeriod slices an already-fetched month down to a named period
// ending today, without touching the network. The input month is never
// mutated. For the today period every employee is guaranteed a record: an
// employee with nothing for today gets a synthesized default, same policy
// as the fetcher.
func FilterByPeriod(month attendance.Month, period attendance.Period, now time.Time) attendance.Month {
	if period == attendance.PeriodMonth {
		return month.Clone()
	}

	start := now.AddDate(0, 0, -(period.Days() - 1))
	filtered := filterRange(month, start, now)

	if period == attendance.PeriodToday {
		for id, days := range filtered {
			if len(days) == 0 {
				filtered[id] = []attendance.Day{DefaultDay(id, now, false)}
			}
		}
	}
	return filtered
}

// FilterByRange slices the month to an explicit inclusive date range.
func FilterByRange(month attendance.Month, start, end time.Time) (attendance.Month, error) {
	if dateOnly(start).After(dateOnly(end)) {
		return nil, attendance.ErrInvalidDateRange
	}
	return filterRange(month, start, end), nil
}

// filterRange compares at calendar-day granularity and always returns a
// fresh structure.
func filterRange(month attendance.Month, start, end time.Time) attendance.Month {
	lo, hi := dateOnly(start), dateOnly(end)

	out := make(attendance.Month, len(month))
	for id, days := range month {
		kept := make([]attendance.Day, 0, len(days))
		for _, day := range days {
			date, ok := parseDateKey(day.Date)
			if !ok {
				continue
			}
			d := dateOnly(date)
			if !d.Before(lo) && !d.After(hi) {
				kept = append(kept, day)
			}
		}
		out[id] = kept
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
