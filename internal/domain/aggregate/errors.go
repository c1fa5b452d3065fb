package aggregate

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNoScheduleData  = errors.New("no schedule data")
)
