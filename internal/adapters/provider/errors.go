package provider

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrDataUnavailable covers network and upstream-format failures.
	ErrDataUnavailable = errors.New("data unavailable")
)
