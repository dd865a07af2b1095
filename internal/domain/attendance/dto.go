package attendance

// ========================================
// ATTENDANCE DTOs
// ========================================

// Period is a named, relative date window over an already-fetched month of
// data. All periods end today; filtering by period never triggers a fetch.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodLast3Days Period = "last3days"
	PeriodLast7Days Period = "last7days"
	PeriodMonth     Period = "month"
)

// ParsePeriod validates a period query value. The empty string defaults to
// the today view, matching the dashboard's initial tab.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodLast3Days, PeriodLast7Days, PeriodMonth:
		return Period(s), nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Days returns the number of calendar days the period spans, today
// inclusive. PeriodMonth reports 0: it means "the whole fetched window".
func (p Period) Days() int {
	switch p {
	case PeriodToday:
		return 1
	case PeriodLast3Days:
		return 3
	case PeriodLast7Days:
		return 7
	default:
		return 0
	}
}

type OverviewResponse struct {
	Period    string `json:"period,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Employees Month  `json:"employees"`
}

// Summary is the per-employee fold the dashboard tables show for multi-day
// views. Holidays includes weekend days; Late counts check-ins after the
// morning cutoff.
type Summary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Holidays   int     `json:"holidays"`
	Late       int     `json:"late"`
	Total      int     `json:"total"`
	TotalHours float64 `json:"totalHours"`
}

type SummaryResponse struct {
	Period    string             `json:"period"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Employees map[string]Summary `json:"employees"`
}
