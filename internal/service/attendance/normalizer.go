package attendance

import (
	"regexp"
	"strings"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
)

// Check-ins after this time of day count as late; a day with no data stays
// "Yet to Check In" until this time has passed.
const (
	checkInCutoffHour   = 10
	checkInCutoffMinute = 30
)

const canonicalDateLayout = "2006-01-02"

// FirstIn/LastOut usually look like "29-04-2025 10:20 AM"; the pattern
// captures the time portion.
var timestampPattern = regexp.MustCompile(`\d{2}-\d{2}-\d{4}\s+(\d{2}:\d{2}\s+[AP]M)`)

// NormalizeDay converts one upstream day record into the canonical form.
// It is pure: the outcome depends only on the record, the date key, and the
// explicit now (used solely for the today-before-cutoff branch).
//
// Status precedence: a present check-in always wins, then the upstream
// status verbatim, then "Yet to Check In" for today before the cutoff,
// otherwise Absent.
func NormalizeDay(rec zoho.DayRecord, dateKey, employeeID string, now time.Time) attendance.Day {
	checkIn := extractTime(rec.FirstIn)
	checkOut := extractTime(rec.LastOut)

	date, dateOK := parseDateKey(dateKey)
	canonicalDate := dateKey
	if dateOK {
		canonicalDate = date.Format(canonicalDateLayout)
	}

	status := attendance.StatusAbsent
	switch {
	case checkIn != nil:
		status = attendance.StatusPresent
	case rec.Status != "":
		status = rec.Status
	case dateOK && sameDay(date, now) && beforeCutoff(now):
		status = attendance.StatusYetToCheckIn
	}

	lower := strings.ToLower(status)
	day := attendance.Day{
		EmployeeID:     employeeID,
		Date:           canonicalDate,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		Status:         status,
		IsHoliday:      strings.Contains(lower, "holiday"),
		IsLeave:        strings.Contains(lower, "leave"),
		ShiftName:      rec.ShiftName,
		ShiftStartTime: rec.ShiftStartTime,
		ShiftEndTime:   rec.ShiftEndTime,
		Location:       rec.Location,
		Raw:            rec.Raw,
	}
	if day.IsHoliday {
		day.HolidayName = status
	}
	if day.IsLeave {
		day.LeaveType = status
	}
	if dateOK {
		day.IsWeekend = isWeekend(date)
	}
	return day
}

// DefaultDay synthesizes the record used when upstream returned nothing for
// an employee, or when the fetch itself failed (fetchFailed tags the
// latter).
func DefaultDay(employeeID string, date time.Time, fetchFailed bool) attendance.Day {
	return attendance.Day{
		EmployeeID:  employeeID,
		Date:        date.Format(canonicalDateLayout),
		Status:      attendance.StatusYetToCheckIn,
		IsWeekend:   isWeekend(date),
		FetchFailed: fetchFailed,
	}
}

// extractTime pulls the display time out of a free-text timestamp field.
// "-" and empty mean the field is absent. When the primary pattern misses,
// the last two whitespace tokens are taken as "HH:MM AM".
func extractTime(field string) *string {
	field = strings.TrimSpace(field)
	if field == "" || field == "-" {
		return nil
	}
	if m := timestampPattern.FindStringSubmatch(field); m != nil {
		return &m[1]
	}
	parts := strings.Fields(field)
	if len(parts) >= 2 {
		t := parts[len(parts)-2] + " " + parts[len(parts)-1]
		return &t
	}
	return nil
}

// parseDateKey accepts both date-key spellings the upstream uses.
func parseDateKey(key string) (time.Time, bool) {
	if t, err := time.Parse(canonicalDateLayout, key); err == nil {
		return t, true
	}
	if t, err := zoho.ParseDate(key); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func beforeCutoff(now time.Time) bool {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(),
		checkInCutoffHour, checkInCutoffMinute, 0, 0, now.Location())
	return now.Before(cutoff)
}
