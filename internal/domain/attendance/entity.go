package attendance

import (
	"encoding/json"
)

// Canonical status values produced by normalization. Holiday, weekend and
// leave records carry the upstream status string verbatim and are classified
// through the boolean flags instead.
const (
	StatusPresent      = "Present"
	StatusAbsent       = "Absent"
	StatusYetToCheckIn = "Yet to Check In"
)

// Day is the canonical per-employee-per-date attendance record after
// normalization. Date is day-granular, formatted 2006-01-02.
//
// Invariant: Status is StatusPresent whenever CheckInTime is non-nil,
// regardless of what the upstream system reported for that day.
type Day struct {
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Status       string  `json:"status"`
	IsHoliday    bool    `json:"isHoliday"`
	HolidayName  string  `json:"holidayName,omitempty"`
	IsWeekend    bool    `json:"isWeekend"`
	IsLeave      bool    `json:"isLeave"`
	LeaveType    string  `json:"leaveType,omitempty"`

	ShiftName      string `json:"shiftName,omitempty"`
	ShiftStartTime string `json:"shiftStartTime,omitempty"`
	ShiftEndTime   string `json:"shiftEndTime,omitempty"`
	Location       string `json:"location,omitempty"`

	// FetchFailed marks a synthesized record standing in for an employee
	// whose upstream fetch failed, so "data unavailable" can be told apart
	// from a legitimate absence.
	FetchFailed bool `json:"fetchFailed,omitempty"`

	// Raw is the upstream day record as received, retained for audit.
	Raw json.RawMessage `json:"-"`
}

// Month maps employee ID to that employee's records for the fetched window,
// ordered by ascending date. It is the only attendance data cached in
// process and is always rebuilt wholesale, never patched.
type Month map[string][]Day

// Clone returns a fresh Month sharing no slice or map structure with m.
// Day values themselves are immutable after normalization.
func (m Month) Clone() Month {
	out := make(Month, len(m))
	for id, days := range m {
		cp := make([]Day, len(days))
		copy(cp, days)
		out[id] = cp
	}
	return out
}
