package domain

import "errors"

var (
	// ErrUnsplittable is returned when a single series still exceeds the
	// applicable payload ceiling and cannot be bisected further.
	ErrUnsplittable = errors.New("single series exceeds payload size ceiling")
	// ErrInterval indicates a non-positive flush interval at scheduler startup.
	ErrInterval = errors.New("flush interval must be positive")
)
