package socketlabs

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/socketlabs/socketlabs-go/internal/api"
)

const (
	// DefaultEndpoint is the Injection API URL.
	DefaultEndpoint = api.DefaultEndpoint
	// DefaultRequestTimeout bounds each HTTP attempt.
	DefaultRequestTimeout = api.DefaultTimeout
	// MaxRetries is the largest value accepted by WithRetries.
	MaxRetries = api.MaxAllowedRetries
)

// Proxy is a forward HTTP proxy. HTTPS requests are tunneled through it with
// CONNECT.
type Proxy struct {
	Host string
	Port int
}

// String returns the proxy as "host:port".
func (p Proxy) String() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// URL returns the proxy as an http URL.
func (p Proxy) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: p.String()}
}

func (p Proxy) validate() error {
	if isBlank(p.Host) || p.Port <= 0 || p.Port > 65535 {
		return ErrInvalidProxy
	}
	return nil
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	endpoint   string
	httpClient *http.Client
	proxy      *Proxy
	timeout    time.Duration
	retries    int
	logger     *zerolog.Logger

	// Overridden by tests to skip real waits between retries.
	sleep     func(ctx context.Context, d time.Duration) error
	afterFunc func(d time.Duration, f func())
}

// Option configures the client.
type Option func(*clientConfig)

// WithEndpoint sets the Injection API URL.
func WithEndpoint(url string) Option {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithHTTPClient sets a custom HTTP client. It replaces the client built from
// WithProxy and WithRequestTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithProxy routes requests through a forward proxy at host:port.
func WithProxy(host string, port int) Option {
	return func(c *clientConfig) {
		c.proxy = &Proxy{Host: host, Port: port}
	}
}

// WithRequestTimeout sets the timeout of each HTTP attempt.
// Default: 120 seconds
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets how many times a send is retried after a 500, 502, 503 or
// 504 response, a network failure or a timed out attempt. count must be
// within [0, MaxRetries].
//
// There is no deadline spanning all attempts. A send may take up to
// (count+1) request timeouts plus the waits between attempts, which grow
// from one second up to ten seconds each.
// Default: 0 (no retries)
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithLogger sets the logger that receives send, attempt and retry events.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}
