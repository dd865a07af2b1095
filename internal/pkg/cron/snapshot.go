package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
)

// SnapshotJobs keeps the attendance snapshot warm so the dashboard rarely
// pays for a full upstream fan-out on a page load.
type SnapshotJobs struct {
	attendanceSvc attendance.Service
	interval      time.Duration
}

func NewSnapshotJobs(attendanceSvc attendance.Service, interval time.Duration) *SnapshotJobs {
	return &SnapshotJobs{
		attendanceSvc: attendanceSvc,
		interval:      interval,
	}
}

func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_attendance_snapshot", j.interval, j.RefreshSnapshot)
}

// RefreshSnapshot rebuilds the snapshot wholesale, same as the dashboard's
// refresh button.
func (j *SnapshotJobs) RefreshSnapshot(ctx context.Context) error {
	result, err := j.attendanceSvc.Refresh(ctx)
	if err != nil {
		return err
	}
	slog.Info("Attendance snapshot refreshed", "employees", len(result.Employees))
	return nil
}
