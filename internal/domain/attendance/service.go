package attendance

import (
	"context"
	"time"
)

// Service exposes the cached attendance snapshot to the HTTP layer.
type Service interface {
	// Overview returns the snapshot sliced to a named period, fetching the
	// snapshot first if none is cached.
	Overview(ctx context.Context, period Period) (OverviewResponse, error)

	// Range returns the snapshot sliced to an explicit date range.
	Range(ctx context.Context, start, end time.Time) (OverviewResponse, error)

	// Summary returns per-employee aggregate counters for a period.
	Summary(ctx context.Context, period Period) (SummaryResponse, error)

	// Refresh rebuilds the snapshot wholesale from upstream.
	Refresh(ctx context.Context) (OverviewResponse, error)
}
