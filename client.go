package socketlabs

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/socketlabs/socketlabs-go/internal/api"
	"github.com/socketlabs/socketlabs-go/internal/apikey"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// userAgent identifies the SDK and Go runtime, for example
// "SocketLabs-go/1.0.0;go(1.25.5)".
func userAgent() string {
	return fmt.Sprintf("SocketLabs-go/%s;go(%s)", Version, strings.TrimPrefix(runtime.Version(), "go"))
}

// Client sends messages through the Injection API. It is safe for concurrent
// use; independent sends may run at the same time.
type Client struct {
	apiClient *api.Client
	logger    zerolog.Logger

	mu       sync.RWMutex
	serverID int
	apiKey   string
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	if cfg.timeout < 0 {
		return nil, ErrInvalidTimeout
	}

	retry, err := api.NewRetrySettings(cfg.retries)
	if err != nil {
		return nil, wrapError(err)
	}

	apiCfg := api.Config{
		Endpoint:   cfg.endpoint,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		UserAgent:  userAgent(),
		Retry:      retry,
		Logger:     cfg.logger,
		Sleep:      cfg.sleep,
		AfterFunc:  cfg.afterFunc,
	}
	if cfg.proxy != nil {
		if err := cfg.proxy.validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", err, cfg.proxy)
		}
		apiCfg.Proxy = cfg.proxy.URL()
	}

	return api.NewClient(apiCfg)
}

// New creates a client for the given server ID and Injection API key.
// Credentials are checked when a message is sent, not here; an invalid
// credential yields an AuthenticationValidationFailed result.
func New(serverID int, apiKey string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		endpoint: DefaultEndpoint,
		timeout:  DefaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return &Client{
		apiClient: apiClient,
		logger:    logger,
		serverID:  serverID,
		apiKey:    apiKey,
	}, nil
}

// ServerID returns the SocketLabs server ID.
func (c *Client) ServerID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverID
}

// SetServerID changes the server ID used by subsequent sends.
func (c *Client) SetServerID(serverID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverID = serverID
}

// APIKey returns the Injection API key.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// SetAPIKey changes the API key used by subsequent sends.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

// Endpoint returns the Injection API URL.
func (c *Client) Endpoint() string {
	return c.apiClient.Endpoint()
}

// Retries returns the configured retry count.
func (c *Client) Retries() int {
	return c.apiClient.RetrySettings().MaxRetries
}

// Send validates msg and sends it, blocking until the final attempt
// completes.
//
// A message that fails validation is never sent; its result is returned with
// a nil error. Responses from the Injection API are always returned as a
// SendResponse, whatever the status. An error is returned only if msg is nil,
// ctx is cancelled, or the request could not be completed: a network failure
// without retries, or a *RetryError once every retry has failed.
func (c *Client) Send(ctx context.Context, msg Message) (*SendResponse, error) {
	req, resp, err := c.prepare(msg)
	if err != nil || resp != nil {
		return resp, err
	}

	raw, err := c.apiClient.Send(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return c.parse(req.SendID, raw), nil
}

// SendAsync validates msg and sends it without blocking. Exactly one of
// onSuccess or onError is called, once, on another goroutine.
//
// onSuccess receives every SendResponse Send would have returned, including
// validation failures. onError receives every error Send would have returned.
// Cancelling ctx after SendAsync returns does not stop the send.
func (c *Client) SendAsync(ctx context.Context, msg Message, onSuccess func(*SendResponse), onError func(error)) {
	if onSuccess == nil {
		onSuccess = func(*SendResponse) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	req, resp, err := c.prepare(msg)
	if err != nil {
		go onError(err)
		return
	}
	if resp != nil {
		go onSuccess(resp)
		return
	}

	c.apiClient.SendAsync(ctx, req,
		func(raw *api.Response) {
			onSuccess(c.parse(req.SendID, raw))
		},
		func(err error) {
			onError(wrapError(err))
		},
	)
}

// prepare validates msg and builds its request. It returns a response
// instead of a request when validation fails.
func (c *Client) prepare(msg Message) (*api.Request, *SendResponse, error) {
	if isNilMessage(msg) {
		return nil, nil, ErrNilMessage
	}

	c.mu.RLock()
	serverID, key := c.serverID, c.apiKey
	c.mu.RUnlock()

	sendID := uuid.NewString()
	log := c.logger.With().Str("send_id", sendID).Str("message_type", msg.Type().String()).Logger()

	if resp := ValidateCredentials(serverID, key); resp.Result != Success {
		log.Debug().Str("result", resp.Result.Name()).Msg("credential validation failed")
		return nil, resp, nil
	}
	if resp := ValidateMessage(msg); resp.Result != Success {
		log.Debug().Str("result", resp.Result.Name()).Int("invalid_addresses", len(resp.AddressResults)).Msg("message validation failed")
		return nil, resp, nil
	}

	parts, result := apikey.Parse(key)
	req := &api.Request{SendID: sendID}
	if result == apikey.Success {
		req.Payload = newInjectionRequest(serverID, parts.Public, msg)
		req.BearerToken = parts.Secret
	} else {
		req.Payload = newInjectionRequest(serverID, key, msg)
	}
	log.Debug().Str("api_key_format", result.String()).Msg("sending message")

	return req, nil, nil
}

func (c *Client) parse(sendID string, raw *api.Response) *SendResponse {
	resp := parseResponse(raw.StatusCode, raw.Body)
	c.logger.Info().
		Str("send_id", sendID).
		Int("status", raw.StatusCode).
		Str("result", resp.Result.Name()).
		Str("transaction_receipt", resp.TransactionReceipt).
		Msg("message sent")
	return resp
}
