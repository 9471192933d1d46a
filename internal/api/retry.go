package api

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// Retry limits.
const (
	// MaxAllowedRetries is the largest accepted retry count.
	MaxAllowedRetries = 5
	// MinRetryWait is the base wait before a retry.
	MinRetryWait = time.Second
	// MaxRetryWait caps every computed wait.
	MaxRetryWait = 10 * time.Second
)

// Bounds of the random multiplier applied to the exponential part of the wait.
const (
	jitterMinMS = 800
	jitterMaxMS = 1200
)

// RetrySettings configures retry behavior for transient Injection API failures.
type RetrySettings struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// randBetween returns a uniform integer in [min, max]. Tests replace it.
	randBetween func(min, max int) int
}

// NewRetrySettings returns settings allowing maxRetries retries.
// maxRetries must be within [0, MaxAllowedRetries].
func NewRetrySettings(maxRetries int) (*RetrySettings, error) {
	if maxRetries < 0 || maxRetries > MaxAllowedRetries {
		return nil, fmt.Errorf("%w: %d is outside [0, %d]", ErrInvalidRetries, maxRetries, MaxAllowedRetries)
	}
	return &RetrySettings{MaxRetries: maxRetries}, nil
}

// DefaultRetrySettings returns settings with retries disabled.
func DefaultRetrySettings() *RetrySettings {
	return &RetrySettings{}
}

// NextWaitInterval returns the wait before the retry that follows the given
// number of failed attempts:
//
//	min(MinRetryWait + (2^attempt - 1) * rand[800ms, 1200ms], MaxRetryWait)
//
// attempt 0 always waits exactly MinRetryWait. The result never decreases
// as attempt grows and never exceeds MaxRetryWait.
func (r *RetrySettings) NextWaitInterval(attempt int) time.Duration {
	minMS := MinRetryWait.Milliseconds()
	maxMS := MaxRetryWait.Milliseconds()

	interval := minMS + r.retryDelta(attempt)
	if interval > maxMS {
		interval = maxMS
	}
	return time.Duration(interval) * time.Millisecond
}

func (r *RetrySettings) retryDelta(attempt int) int64 {
	between := r.randBetween
	if between == nil {
		between = randBetween
	}
	return int64((math.Pow(2, float64(attempt)) - 1) * float64(between(jitterMinMS, jitterMaxMS)))
}

func randBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// IsRetryableStatus reports whether an HTTP status is treated as a transient
// server failure: 500, 502, 503 and 504.
func IsRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// sleepWithContext waits for d or until ctx is done.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
