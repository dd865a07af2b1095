package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/cache"
	"golang.org/x/sync/singleflight"
)

type AttendanceServiceImpl struct {
	fetcher     *Fetcher
	directory   employee.Service
	store       *cache.Store
	snapshotTTL time.Duration
	group       singleflight.Group
	now         func() time.Time
}

func NewAttendanceService(
	fetcher *Fetcher,
	directory employee.Service,
	store *cache.Store,
	snapshotTTL time.Duration,
) attendance.Service {
	return &AttendanceServiceImpl{
		fetcher:     fetcher,
		directory:   directory,
		store:       store,
		snapshotTTL: snapshotTTL,
		now:         time.Now,
	}
}

// Overview implements attendance.Service.
func (s *AttendanceServiceImpl) Overview(ctx context.Context, period attendance.Period) (attendance.OverviewResponse, error) {
	month, err := s.snapshot(ctx, false)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	now := s.now()
	return attendance.OverviewResponse{
		Period:    string(period),
		StartDate: s.periodStart(period, now).Format(canonicalDateLayout),
		EndDate:   now.Format(canonicalDateLayout),
		Employees: FilterByPeriod(month, period, now),
	}, nil
}

// Range implements attendance.Service.
func (s *AttendanceServiceImpl) Range(ctx context.Context, start, end time.Time) (attendance.OverviewResponse, error) {
	month, err := s.snapshot(ctx, false)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	filtered, err := FilterByRange(month, start, end)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	return attendance.OverviewResponse{
		StartDate: start.Format(canonicalDateLayout),
		EndDate:   end.Format(canonicalDateLayout),
		Employees: filtered,
	}, nil
}

// Summary implements attendance.Service.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, period attendance.Period) (attendance.SummaryResponse, error) {
	month, err := s.snapshot(ctx, false)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	now := s.now()
	return attendance.SummaryResponse{
		Period:    string(period),
		StartDate: s.periodStart(period, now).Format(canonicalDateLayout),
		EndDate:   now.Format(canonicalDateLayout),
		Employees: SummarizeMonth(FilterByPeriod(month, period, now)),
	}, nil
}

// Refresh implements attendance.Service.
func (s *AttendanceServiceImpl) Refresh(ctx context.Context) (attendance.OverviewResponse, error) {
	month, err := s.snapshot(ctx, true)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	now := s.now()
	return attendance.OverviewResponse{
		Period:    string(attendance.PeriodMonth),
		StartDate: s.fetcher.WindowStart(now).Format(canonicalDateLayout),
		EndDate:   now.Format(canonicalDateLayout),
		Employees: month,
	}, nil
}

// snapshot returns the cached month, rebuilding it when absent, expired, or
// forced. Concurrent rebuilds collapse into one upstream fan-out.
func (s *AttendanceServiceImpl) snapshot(ctx context.Context, force bool) (attendance.Month, error) {
	if !force {
		if month, ok := s.store.Snapshot(); ok {
			return month, nil
		}
	}

	v, err, shared := s.group.Do("snapshot", func() (interface{}, error) {
		ids, err := s.directory.IDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve employee IDs: %w", err)
		}

		month, err := s.fetcher.FetchMonth(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", attendance.ErrSnapshotFailed, err)
		}

		s.store.SetSnapshot(month, s.snapshotTTL)
		slog.Info("Attendance snapshot rebuilt", "employees", len(month))
		return month, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Snapshot rebuild shared between concurrent callers")
	}
	return v.(attendance.Month), nil
}

func (s *AttendanceServiceImpl) periodStart(period attendance.Period, now time.Time) time.Time {
	if period == attendance.PeriodMonth {
		return s.fetcher.WindowStart(now)
	}
	return now.AddDate(0, 0, -(period.Days() - 1))
}
