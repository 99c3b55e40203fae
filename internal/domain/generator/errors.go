package generator

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidCount = errors.New("company count must be positive")
	ErrInvalidDays  = errors.New("history days must be positive")
)
