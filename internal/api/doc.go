// Package api provides the HTTP layer for the Injection API. It defines the
// wire types, posts requests over HTTPS and applies the retry policy for
// transient failures.
//
// # Client Creation
//
// [NewClient] takes a [Config]. Every field is optional: the endpoint
// defaults to [DefaultEndpoint], the per-attempt timeout to [DefaultTimeout]
// and retries are disabled. A forward proxy may be configured; HTTPS
// requests are tunneled through it with CONNECT. Connections are never
// reused between attempts.
//
// # Retry Behavior
//
// Retries are off unless [Config.Retry] allows them (at most
// [MaxAllowedRetries]). When enabled, these outcomes are retried:
//
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//   - network failures and per-attempt timeouts
//
// The wait before a retry is computed by [RetrySettings.NextWaitInterval]:
// one second plus a randomized exponential term, capped at ten seconds.
// Every other response is returned to the caller untouched, and the status
// code is never interpreted here beyond retry classification.
//
// # Error Handling
//
// After the last allowed attempt fails, [Client.Send] returns a [*RetryError]
// wrapping either an [*APIError] or a [*NetworkError]:
//
//	if errors.Is(err, api.ErrRetriesExhausted) {
//	    // every attempt failed
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Each call to Send or
// SendAsync keeps its own attempt count.
package api
