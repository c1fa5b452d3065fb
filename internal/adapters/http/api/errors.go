package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind tags an error kind with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags an error kind with the operation and the underlying cause.
func WrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}
