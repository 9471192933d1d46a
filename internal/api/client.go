package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Defaults.
const (
	DefaultEndpoint = "https://inject.socketlabs.com/api/v1/email"
	DefaultTimeout  = 120 * time.Second
)

// Config holds configuration for creating a Client.
type Config struct {
	// Endpoint is the Injection API URL. Defaults to DefaultEndpoint.
	Endpoint string
	// Timeout bounds each HTTP attempt. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Proxy, when set, is used as a forward proxy. HTTPS requests are
	// tunneled through it with CONNECT.
	Proxy *url.URL
	// HTTPClient overrides the client built from Timeout and Proxy.
	HTTPClient *http.Client
	// UserAgent identifies the SDK to the API.
	UserAgent string
	// Retry configures retries. Nil disables them.
	Retry *RetrySettings
	// Logger receives attempt and retry events. Nil discards them.
	Logger *zerolog.Logger

	// Sleep waits between synchronous attempts and AfterFunc schedules
	// asynchronous ones. Both default to real timers.
	Sleep     func(ctx context.Context, d time.Duration) error
	AfterFunc func(d time.Duration, f func())
}

// Client posts injection requests and applies the retry policy.
// It is safe for concurrent use.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	retry      *RetrySettings
	logger     zerolog.Logger

	sleep     func(ctx context.Context, d time.Duration) error
	afterFunc func(d time.Duration, f func())
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid timeout: %v", cfg.Timeout)
	}
	if cfg.Retry == nil {
		cfg.Retry = DefaultRetrySettings()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg.Timeout, cfg.Proxy)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepWithContext
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = afterFunc
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		retry:      cfg.Retry,
		logger:     logger,
		sleep:      cfg.Sleep,
		afterFunc:  cfg.AfterFunc,
	}, nil
}

// newHTTPClient builds a client that opens a fresh connection for every
// attempt.
func newHTTPClient(timeout time.Duration, proxy *url.URL) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	transport.Proxy = nil
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Endpoint returns the Injection API URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// RetrySettings returns the retry policy.
func (c *Client) RetrySettings() *RetrySettings {
	return c.retry
}

// post performs a single HTTP attempt. It never retries and never
// interprets the status code.
func (c *Client) post(ctx context.Context, body []byte, bearerToken string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.endpoint}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response body: %w", err), URL: c.endpoint}
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// postAsync performs a single HTTP attempt on a new goroutine and reports
// the outcome to exactly one of onSuccess or onError.
func (c *Client) postAsync(ctx context.Context, body []byte, bearerToken string, onSuccess func(*Response), onError func(error)) {
	go func() {
		resp, err := c.post(ctx, body, bearerToken)
		if err != nil {
			onError(err)
			return
		}
		onSuccess(resp)
	}()
}
