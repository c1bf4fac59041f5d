package services

import "errors"

var (
	// ErrNotFound signals that a referenced record does not exist or does
	// not belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrNoOngoingActivity signals an end call with nothing to end. It is
	// an expected outcome, not a failure.
	ErrNoOngoingActivity = errors.New("no ongoing activity")
)
