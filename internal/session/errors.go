package session

import "errors"

var (
	// ErrEmptySelection indicates no drill was selected, so there is nothing to call out.
	ErrEmptySelection = errors.New("select drills to start")

	// ErrActive indicates the operation is not allowed while a session runs.
	ErrActive = errors.New("session is active")

	// ErrInvalidPace indicates a pace that cannot drive a periodic trigger.
	ErrInvalidPace = errors.New("pace must be > 0 seconds")
)
