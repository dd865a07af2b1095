package employee

import "context"

// Service provides the cached employee directory.
type Service interface {
	// List returns the active employees of the configured department.
	List(ctx context.Context) ([]Employee, error)

	// IDs returns the attendance-relevant employee IDs of the directory.
	IDs(ctx context.Context) ([]string, error)
}
