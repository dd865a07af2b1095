package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidPeriod    = errors.New("unknown attendance period")
	ErrInvalidDateRange = errors.New("invalid date range: start must not be after end")
	ErrSnapshotFailed   = errors.New("failed to build attendance snapshot")
)
