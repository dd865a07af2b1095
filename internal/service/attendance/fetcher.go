package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
	"golang.org/x/sync/errgroup"
)

// Upstream requests in flight at once during a fan-out.
const defaultFanOutLimit = 8

// Fetcher pulls attendance for many employees in parallel and normalizes
// the result. One employee's failure never aborts the batch: the failed
// employee keeps a map entry holding a single flagged default record.
type Fetcher struct {
	client     *zoho.Client
	windowDays int
	limit      int
	now        func() time.Time
}

func NewFetcher(client *zoho.Client, windowDays int) *Fetcher {
	return &Fetcher{
		client:     client,
		windowDays: windowDays,
		limit:      defaultFanOutLimit,
		now:        time.Now,
	}
}

// FetchRange fetches and normalizes attendance for all employees over an
// inclusive date range. The returned month has one entry per requested
// employee; per-employee days are ordered by ascending date.
//
// An error is returned only when no usable token exists at all; everything
// past that point is absorbed into per-employee fallback records.
func (f *Fetcher) FetchRange(ctx context.Context, employeeIDs []string, start, end time.Time) (attendance.Month, error) {
	// One proactive refresh so the fan-out does not race an expiring token.
	if _, err := f.client.Tokens().Refresh(ctx); err != nil {
		if _, ok := f.client.Tokens().CachedToken(); !ok {
			return nil, fmt.Errorf("token refresh failed with no cached token: %w", err)
		}
		slog.Warn("Proactive token refresh failed, proceeding with held token", "error", err)
	}

	month := make(attendance.Month, len(employeeIDs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(f.limit)

	for _, employeeID := range employeeIDs {
		employeeID := employeeID
		g.Go(func() error {
			days := f.fetchEmployee(ctx, employeeID, start, end)
			mu.Lock()
			month[employeeID] = days
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return month, nil
}

// FetchToday fetches the single-day range ending now.
func (f *Fetcher) FetchToday(ctx context.Context, employeeIDs []string) (attendance.Month, error) {
	today := f.now()
	return f.FetchRange(ctx, employeeIDs, today, today)
}

// FetchLastNDays fetches the n calendar days ending today, today inclusive.
func (f *Fetcher) FetchLastNDays(ctx context.Context, employeeIDs []string, n int) (attendance.Month, error) {
	end := f.now()
	return f.FetchRange(ctx, employeeIDs, end.AddDate(0, 0, -(n-1)), end)
}

// FetchMonth fetches the fetcher's full window (30 days by default).
func (f *Fetcher) FetchMonth(ctx context.Context, employeeIDs []string) (attendance.Month, error) {
	end := f.now()
	return f.FetchRange(ctx, employeeIDs, end.AddDate(0, 0, -f.windowDays), end)
}

// WindowStart reports the start of the month window ending at end.
func (f *Fetcher) WindowStart(end time.Time) time.Time {
	return end.AddDate(0, 0, -f.windowDays)
}

func (f *Fetcher) fetchEmployee(ctx context.Context, employeeID string, start, end time.Time) []attendance.Day {
	now := f.now()

	records, err := f.client.GetAttendanceReport(ctx, employeeID, start, end)
	if err != nil {
		slog.Error("Attendance fetch failed for employee", "employee_id", employeeID, "error", err)
		return []attendance.Day{DefaultDay(employeeID, now, true)}
	}

	if len(records) == 0 {
		return []attendance.Day{DefaultDay(employeeID, now, false)}
	}

	days := make([]attendance.Day, 0, len(records))
	for dateKey, rec := range records {
		days = append(days, NormalizeDay(rec, dateKey, employeeID, now))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
