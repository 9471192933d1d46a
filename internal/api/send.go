package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Request is one logical send: a payload plus the credentials that travel
// outside of it.
type Request struct {
	Payload *InjectionRequest
	// BearerToken is sent as "Authorization: Bearer <token>" when non-empty.
	BearerToken string
	// SendID correlates log events of one logical send.
	SendID string
}

func (r *Request) encode() ([]byte, error) {
	if r == nil || r.Payload == nil {
		return nil, errors.New("nil injection request")
	}
	data, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// Send posts req and retries transient failures according to the client's
// RetrySettings.
//
// With retries disabled exactly one attempt is made and its response is
// returned as-is, whatever the status. Otherwise a 500, 502, 503 or 504
// response, a network failure or a per-attempt timeout is retried after
// NextWaitInterval; any other response is returned. When the retries run out
// the last failure is returned wrapped in a *RetryError. Cancelling ctx aborts
// the send and is never retried.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	body, err := req.encode()
	if err != nil {
		return nil, err
	}
	log := c.logger.With().Str("send_id", req.SendID).Logger()

	if c.retry.MaxRetries == 0 {
		log.Debug().Msg("posting injection request")
		return c.post(ctx, body, req.BearerToken)
	}

	attempts := 0
	for {
		wait := c.retry.NextWaitInterval(attempts)

		log.Debug().Int("attempt", attempts+1).Msg("posting injection request")
		resp, err := c.post(ctx, body, req.BearerToken)

		retryable, failure := classify(ctx, resp, err, attempts+1)
		if !retryable {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}

		attempts++
		if attempts > c.retry.MaxRetries {
			log.Error().Err(failure).Int("attempts", attempts).Msg("injection request retries exhausted")
			return nil, &RetryError{Attempts: attempts, Err: failure}
		}

		logRetry(log, failure, attempts, wait)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// SendAsync posts req without blocking the caller. Exactly one of onSuccess
// or onError is called, once, from another goroutine: onSuccess with the
// final response, onError with a terminal or exhausted failure.
//
// The retry policy is the one of Send. Waits between attempts are timers,
// not sleeping goroutines. Cancelling ctx has no effect once SendAsync has
// been called; only the per-attempt timeout applies.
func (c *Client) SendAsync(ctx context.Context, req *Request, onSuccess func(*Response), onError func(error)) {
	body, err := req.encode()
	if err != nil {
		go onError(err)
		return
	}

	s := &asyncSend{
		client:    c,
		ctx:       context.WithoutCancel(ctx),
		body:      body,
		bearer:    req.BearerToken,
		log:       c.logger.With().Str("send_id", req.SendID).Logger(),
		onSuccess: onSuccess,
		onError:   onError,
	}

	if c.retry.MaxRetries == 0 {
		s.log.Debug().Msg("posting injection request")
		c.postAsync(s.ctx, body, s.bearer, onSuccess, onError)
		return
	}
	s.attempt(0)
}

// asyncSend holds the immutable state of one asynchronous send. The attempt
// count is threaded through the continuations rather than stored, so a
// send can never observe another send's counter.
type asyncSend struct {
	client    *Client
	ctx       context.Context
	body      []byte
	bearer    string
	log       zerolog.Logger
	onSuccess func(*Response)
	onError   func(error)
}

func (s *asyncSend) attempt(attempts int) {
	wait := s.client.retry.NextWaitInterval(attempts)

	s.log.Debug().Int("attempt", attempts+1).Msg("posting injection request")
	s.client.postAsync(s.ctx, s.body, s.bearer,
		func(resp *Response) {
			if !IsRetryableStatus(resp.StatusCode) {
				s.onSuccess(resp)
				return
			}
			s.retry(attempts, wait, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)})
		},
		func(err error) {
			if retryable, _ := classify(s.ctx, nil, err, attempts+1); !retryable {
				s.onError(err)
				return
			}
			s.retry(attempts, wait, err)
		},
	)
}

func (s *asyncSend) retry(attempts int, wait time.Duration, failure error) {
	attempts++
	if attempts > s.client.retry.MaxRetries {
		s.log.Error().Err(failure).Int("attempts", attempts).Msg("injection request retries exhausted")
		s.onError(&RetryError{Attempts: attempts, Err: failure})
		return
	}

	logRetry(s.log, failure, attempts, wait)
	s.client.afterFunc(wait, func() { s.attempt(attempts) })
}

// classify decides whether the outcome of attempt number attempt should be
// retried and returns the failure to report.
func classify(ctx context.Context, resp *Response, err error, attempt int) (bool, error) {
	if err != nil {
		if ctx.Err() != nil {
			return false, err
		}
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			return false, err
		}
		netErr.Attempt = attempt
		return true, netErr
	}
	if IsRetryableStatus(resp.StatusCode) {
		return true, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return false, nil
}

func logRetry(log zerolog.Logger, failure error, attempts int, wait time.Duration) {
	event := log.Warn().Int("attempt", attempts).Dur("wait", wait)
	var apiErr *APIError
	if errors.As(failure, &apiErr) {
		event = event.Int("status", apiErr.StatusCode)
	} else {
		event = event.Err(failure)
	}
	event.Msg("retrying injection request")
}
