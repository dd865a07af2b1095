package attendance

import (
	"testing"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayOn(employeeID, date string) attendance.Day {
	return attendance.Day{EmployeeID: employeeID, Date: date, Status: attendance.StatusPresent}
}

func monthFixture() attendance.Month {
	return attendance.Month{
		"E1": {
			dayOn("E1", "2025-04-20"),
			dayOn("E1", "2025-04-23"),
			dayOn("E1", "2025-04-27"),
			dayOn("E1", "2025-04-29"),
		},
		"E2": {
			dayOn("E2", "2025-04-10"),
		},
	}
}

func TestFilterByPeriodLast7Days(t *testing.T) {
	got := FilterByPeriod(monthFixture(), attendance.PeriodLast7Days, testNow)

	// Window is [2025-04-23, 2025-04-29], both ends inclusive.
	require.Len(t, got["E1"], 3)
	assert.Equal(t, "2025-04-23", got["E1"][0].Date)
	assert.Equal(t, "2025-04-29", got["E1"][2].Date)
	assert.Empty(t, got["E2"])
}

func TestFilterByPeriodLast3Days(t *testing.T) {
	got := FilterByPeriod(monthFixture(), attendance.PeriodLast3Days, testNow)

	require.Len(t, got["E1"], 2)
	assert.Equal(t, "2025-04-27", got["E1"][0].Date)
	assert.Equal(t, "2025-04-29", got["E1"][1].Date)
}

func TestFilterByPeriodTodaySynthesizesMissing(t *testing.T) {
	got := FilterByPeriod(monthFixture(), attendance.PeriodToday, testNow)

	require.Len(t, got["E1"], 1)
	assert.Equal(t, "2025-04-29", got["E1"][0].Date)
	assert.Equal(t, attendance.StatusPresent, got["E1"][0].Status)

	// E2 has nothing today; a default record fills the gap so the map keeps
	// one entry per employee.
	require.Len(t, got["E2"], 1)
	assert.Equal(t, attendance.StatusYetToCheckIn, got["E2"][0].Status)
	assert.Equal(t, "2025-04-29", got["E2"][0].Date)
	assert.False(t, got["E2"][0].FetchFailed)
}

func TestFilterByPeriodMonthReturnsClone(t *testing.T) {
	src := monthFixture()
	got := FilterByPeriod(src, attendance.PeriodMonth, testNow)

	require.Len(t, got["E1"], 4)
	got["E1"][0].Status = "mutated"
	assert.Equal(t, attendance.StatusPresent, src["E1"][0].Status)
}

func TestFilterByPeriodDoesNotMutateInput(t *testing.T) {
	src := monthFixture()
	_ = FilterByPeriod(src, attendance.PeriodToday, testNow)

	assert.Len(t, src["E1"], 4)
	assert.Len(t, src["E2"], 1)
}

func TestFilterByRange(t *testing.T) {
	start := time.Date(2025, time.April, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 27, 23, 59, 0, 0, time.UTC)

	got, err := FilterByRange(monthFixture(), start, end)
	require.NoError(t, err)

	require.Len(t, got["E1"], 2)
	assert.Equal(t, "2025-04-23", got["E1"][0].Date)
	assert.Equal(t, "2025-04-27", got["E1"][1].Date)
}

func TestFilterByRangeRejectsInvertedRange(t *testing.T) {
	start := time.Date(2025, time.April, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 22, 0, 0, 0, 0, time.UTC)

	_, err := FilterByRange(monthFixture(), start, end)
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}

func TestFilterByRangeSameDay(t *testing.T) {
	day := time.Date(2025, time.April, 23, 10, 0, 0, 0, time.UTC)

	got, err := FilterByRange(monthFixture(), day, day)
	require.NoError(t, err)
	require.Len(t, got["E1"], 1)
	assert.Equal(t, "2025-04-23", got["E1"][0].Date)
}
