package domain

import "errors"

// Failure taxonomy surfaced to callers. Handlers map each sentinel to a
// distinct HTTP status so the UI can render a specific message.
var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("dates already booked")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrUnavailable       = errors.New("storage unavailable")
)
