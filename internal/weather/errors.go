package weather

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNotFound is returned when the service answered with a non-success status,
	// typically because it could not resolve the place name.
	ErrNotFound = errors.New("location not found")

	// ErrTransport is returned when no response was obtained.
	ErrTransport = errors.New("weather service unreachable")

	// ErrMalformedResponse is returned when a response could not be decoded
	// or lacks the fields needed for display.
	ErrMalformedResponse = errors.New("malformed weather response")
)
