package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrHardDeadline = errors.New("deadline is hard and cannot be changed")
	ErrInvalidInput = errors.New("invalid input")
)
