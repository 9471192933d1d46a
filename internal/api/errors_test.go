package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "with body",
			err:      &APIError{StatusCode: 503, Body: "service unavailable"},
			expected: "API error 503: service unavailable",
		},
		{
			name:     "without body",
			err:      &APIError{StatusCode: 500},
			expected: "API error 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Err: inner, URL: DefaultEndpoint}

	if err.Error() != "network error: connection refused" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestNetworkError_Timeout(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"timeout", timeoutErr{}, true},
		{"wrapped timeout", fmt.Errorf("dial: %w", timeoutErr{}), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &NetworkError{Err: tt.err}
			if got := err.Timeout(); got != tt.expected {
				t.Errorf("Timeout() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRetryError(t *testing.T) {
	last := &APIError{StatusCode: 502}
	err := &RetryError{Attempts: 3, Err: last}

	if err.Error() != "injection request failed after 3 attempts: API error 502" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Error("errors.Is(err, ErrRetriesExhausted) = false")
	}
	if errors.Is(err, ErrInvalidRetries) {
		t.Error("errors.Is(err, ErrInvalidRetries) = true")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 502 {
		t.Errorf("errors.As did not unwrap to the last APIError: %v", apiErr)
	}

	wrapped := fmt.Errorf("send: %w", err)
	if !errors.Is(wrapped, ErrRetriesExhausted) {
		t.Error("wrapped RetryError should still match ErrRetriesExhausted")
	}
}
