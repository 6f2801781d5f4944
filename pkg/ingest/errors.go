package ingest

import "errors"

var (
	ErrInvalidJSON      = errors.New("invalid JSON")
	ErrInvalidTimestamp = errors.New("timestamp is not a number")
	ErrRecorderStopped  = errors.New("recorder stopped")
)
