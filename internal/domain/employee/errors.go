package employee

import "errors"

var (
	ErrDirectoryUnavailable = errors.New("employee directory unavailable")
)
