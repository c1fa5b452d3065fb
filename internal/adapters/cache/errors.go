package cache

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotCached = errors.New("season not cached")
	ErrOpenStore = errors.New("open cache store failed")
)
