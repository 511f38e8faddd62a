package resolve

import "errors"

var (
	// ErrNotFound is returned when no candidate satisfies the requested
	// id, version, or range.
	ErrNotFound = errors.New("package not found")

	// ErrInvalidVersion is returned when a version string fails to parse.
	ErrInvalidVersion = errors.New("invalid version")
)
