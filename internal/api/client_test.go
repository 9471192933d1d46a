package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("endpoint = %s, want %s", client.Endpoint(), DefaultEndpoint)
	}
	if client.httpClient == nil {
		t.Fatal("httpClient is nil")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
	if client.RetrySettings().MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", client.RetrySettings().MaxRetries)
	}
}

func TestNewClient_CustomValues(t *testing.T) {
	customHTTPClient := &http.Client{Timeout: 5 * time.Second}
	retry, _ := NewRetrySettings(3)

	client, err := NewClient(Config{
		Endpoint:   "https://custom.example.com/inject",
		HTTPClient: customHTTPClient,
		Retry:      retry,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.Endpoint() != "https://custom.example.com/inject" {
		t.Errorf("endpoint = %s", client.Endpoint())
	}
	if client.httpClient != customHTTPClient {
		t.Error("httpClient not set correctly")
	}
	if client.RetrySettings().MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", client.RetrySettings().MaxRetries)
	}
}

func TestNewClient_RejectsNegativeTimeout(t *testing.T) {
	if _, err := NewClient(Config{Timeout: -time.Second}); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestNewHTTPClient_DisablesKeepAlives(t *testing.T) {
	client := newHTTPClient(30*time.Second, nil)

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", client.Transport)
	}
	if !transport.DisableKeepAlives {
		t.Error("DisableKeepAlives = false, want true")
	}
	if transport.Proxy != nil {
		t.Error("Proxy should be nil when no proxy is configured")
	}
	if client.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.Timeout)
	}
}

func TestNewHTTPClient_Proxy(t *testing.T) {
	proxy := &url.URL{Scheme: "http", Host: "proxy.example.com:8080"}
	client := newHTTPClient(time.Second, proxy)

	transport := client.Transport.(*http.Transport)
	req, _ := http.NewRequest(http.MethodPost, DefaultEndpoint, nil)
	got, err := transport.Proxy(req)
	if err != nil {
		t.Fatalf("Proxy() error = %v", err)
	}
	if got.String() != proxy.String() {
		t.Errorf("Proxy() = %v, want %v", got, proxy)
	}
}

func TestClient_Post_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json; charset=utf-8" {
			t.Errorf("Content-Type = %s", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %s", got)
		}
		if got := r.Header.Get("User-Agent"); got != "SocketLabs-go/test;go(1.0)" {
			t.Errorf("User-Agent = %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %s, want Bearer secret", got)
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"serverId":"1"}` {
			t.Errorf("body = %s", body)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ErrorCode":"Success"}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{Endpoint: server.URL, UserAgent: "SocketLabs-go/test;go(1.0)"})

	resp, err := client.post(context.Background(), []byte(`{"serverId":"1"}`), "secret")
	if err != nil {
		t.Fatalf("post() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"ErrorCode":"Success"}` {
		t.Errorf("Body = %s", resp.Body)
	}
}

func TestClient_Post_NoBearerWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := NewClient(Config{Endpoint: server.URL})

	resp, err := client.post(context.Background(), []byte(`{}`), "")
	if err != nil {
		t.Fatalf("post() error = %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", resp.StatusCode)
	}
}

func TestClient_Post_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client, _ := NewClient(Config{Endpoint: endpoint})

	_, err := client.post(context.Background(), []byte(`{}`), "")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if netErr.URL != endpoint {
		t.Errorf("URL = %s, want %s", netErr.URL, endpoint)
	}
}

func TestClient_Post_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client, _ := NewClient(Config{Endpoint: server.URL, Timeout: 50 * time.Millisecond})

	_, err := client.post(context.Background(), []byte(`{}`), "")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !netErr.Timeout() {
		t.Errorf("Timeout() = false for %v", netErr.Err)
	}
}

func TestClient_Post_ThroughProxy(t *testing.T) {
	var proxiedHost string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxiedHost = r.URL.Host
		json.NewEncoder(w).Encode(map[string]string{"ErrorCode": "Success"})
	}))
	defer proxy.Close()

	proxyURL, _ := url.Parse(proxy.URL)
	client, _ := NewClient(Config{
		Endpoint: "http://inject.example.test/api/v1/email",
		Proxy:    proxyURL,
	})

	resp, err := client.post(context.Background(), []byte(`{}`), "")
	if err != nil {
		t.Fatalf("post() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if proxiedHost != "inject.example.test" {
		t.Errorf("proxied host = %q, want inject.example.test", proxiedHost)
	}
}

func TestClient_PostAsync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, _ := NewClient(Config{Endpoint: server.URL})

	done := make(chan int, 1)
	client.postAsync(context.Background(), []byte(`{}`), "",
		func(resp *Response) { done <- resp.StatusCode },
		func(err error) { t.Errorf("onError(%v)", err); done <- 0 },
	)

	select {
	case code := <-done:
		if code != http.StatusAccepted {
			t.Errorf("StatusCode = %d, want 202", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("postAsync never completed")
	}
}
