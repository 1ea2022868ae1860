package core

import "errors"

var (
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDay   = errors.New("invalid day")

	// ErrFetchFailed is the only failure surfaced to pages. Adapters wrap
	// transport, status and decoding errors with it.
	ErrFetchFailed = errors.New("fetch failed")
)
