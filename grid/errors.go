package grid

import "errors"

var (
	// ErrInvalidArgument is returned when a nil row, nil generator or empty
	// column id is passed to a mutating call. Nothing is changed.
	ErrInvalidArgument = errors.New("grid: invalid argument")

	// ErrReentrantRefresh is returned when Refresh is called while a refresh
	// is already running, e.g. from inside a generator.
	ErrReentrantRefresh = errors.New("grid: refresh called during refresh")
)
