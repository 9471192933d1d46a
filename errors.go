package socketlabs

import (
	"errors"
	"fmt"

	"github.com/socketlabs/socketlabs-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidRetries is returned when the retry count is outside
	// [0, MaxRetries].
	ErrInvalidRetries = errors.New("retries must be between 0 and 5")

	// ErrInvalidTimeout is returned when the request timeout is negative.
	ErrInvalidTimeout = errors.New("request timeout must not be negative")

	// ErrInvalidProxy is returned when the proxy host or port is invalid.
	ErrInvalidProxy = errors.New("invalid proxy")

	// ErrNilMessage is returned when Send is called with a nil message.
	ErrNilMessage = errors.New("message is nil")

	// ErrRetriesExhausted is returned when every allowed attempt failed with
	// a retryable error.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// SocketLabsError is implemented by all SDK errors.
type SocketLabsError interface {
	error
	SocketLabsError() // marker method
}

// APIError represents a retryable HTTP status returned by the Injection API
// (500, 502, 503 or 504). It is only seen wrapped in a RetryError; without
// retries those statuses are reported through SendResponse.Result.
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

// SocketLabsError implements the SocketLabsError interface.
func (e *APIError) SocketLabsError() {}

// NetworkError represents a network-level failure, including a request that
// exceeded the per-attempt timeout.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request exceeded its timeout.
func (e *NetworkError) Timeout() bool {
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// SocketLabsError implements the SocketLabsError interface.
func (e *NetworkError) SocketLabsError() {}

// RetryError is returned when the last allowed attempt failed with a
// retryable error. Err is an *APIError or a *NetworkError.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("send failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the last error.
func (e *RetryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RetryError) Is(target error) bool {
	return target == ErrRetriesExhausted
}

// SocketLabsError implements the SocketLabsError interface.
func (e *RetryError) SocketLabsError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var retryErr *api.RetryError
	if errors.As(err, &retryErr) {
		return &RetryError{
			Attempts: retryErr.Attempts,
			Err:      wrapError(retryErr.Err),
		}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	if errors.Is(err, api.ErrInvalidRetries) {
		return fmt.Errorf("%w: %w", ErrInvalidRetries, err)
	}

	return err
}
