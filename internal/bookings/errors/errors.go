package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrStateConflict means a transition's source-state filter matched no
	// document even though the booking exists: someone else moved it first.
	ErrStateConflict = errors.New("booking is not in the required state")
)
