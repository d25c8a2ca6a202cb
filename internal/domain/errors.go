package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a stored record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrExtractionFailed is returned when no plausible offer could be recovered from a page.
	ErrExtractionFailed = errors.New("no offer data found")

	// ErrQuotaExceeded is returned when the generation endpoint rejects a call for quota or rate reasons.
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrTransport is returned for network-level failures.
	ErrTransport = errors.New("transport error")

	// ErrProvider is returned when the generation endpoint fails for any other reason.
	ErrProvider = errors.New("provider error")

	// ErrSectionFull is returned when appending would exceed a list's capacity.
	ErrSectionFull = errors.New("section is full")
)

// FetchError describes a failed page fetch.
// Recoverable marks failures worth one more attempt with the alternate client identity
// (connection refused, timeouts, 4xx and 5xx responses).
type FetchError struct {
	URL         string
	Status      int
	Recoverable bool
	RetryAfter  time.Duration
	Err         error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("fetch %s: status code %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
