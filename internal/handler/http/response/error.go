package response

import (
	"errors"
	"net/http"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Unknown period: use today, last3days, last7days or month", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range: start must not be after end", nil)

	// Upstream failures
	case errors.Is(err, employee.ErrDirectoryUnavailable):
		BadGateway(w, "Employee directory unavailable")
	case errors.Is(err, attendance.ErrSnapshotFailed):
		BadGateway(w, "Failed to load attendance data")
	case errors.Is(err, zoho.ErrRateLimited):
		BadGateway(w, "Upstream rate limit exceeded, try again shortly")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
