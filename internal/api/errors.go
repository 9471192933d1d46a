package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrRetriesExhausted indicates every allowed attempt failed with a
	// retryable error.
	ErrRetriesExhausted = errors.New("retries exhausted")
	// ErrInvalidRetries indicates a retry count outside [0, MaxAllowedRetries].
	ErrInvalidRetries = errors.New("invalid number of retries")
)

// APIError represents a retryable HTTP status returned by the Injection API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// NetworkError represents a network-level failure, including per-attempt
// timeouts.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// RetryError is returned when the last allowed attempt still failed with a
// retryable error. Err is that last error.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("injection request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RetryError) Is(target error) bool {
	return target == ErrRetriesExhausted
}
