package socketlabs

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	httpClient := &http.Client{}
	logger := zerolog.Nop()

	opts := []Option{
		WithEndpoint("https://example.com/inject"),
		WithHTTPClient(httpClient),
		WithProxy("proxy.example.com", 3128),
		WithRequestTimeout(30 * time.Second),
		WithRetries(3),
		WithLogger(logger),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.endpoint != "https://example.com/inject" {
		t.Errorf("endpoint = %s", cfg.endpoint)
	}
	if cfg.httpClient != httpClient {
		t.Error("httpClient not set")
	}
	if cfg.proxy == nil || cfg.proxy.Host != "proxy.example.com" || cfg.proxy.Port != 3128 {
		t.Errorf("proxy = %+v", cfg.proxy)
	}
	if cfg.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.timeout)
	}
	if cfg.retries != 3 {
		t.Errorf("retries = %d, want 3", cfg.retries)
	}
	if cfg.logger == nil {
		t.Error("logger not set")
	}
}

func TestProxy(t *testing.T) {
	p := Proxy{Host: "proxy.example.com", Port: 8080}

	if got := p.String(); got != "proxy.example.com:8080" {
		t.Errorf("String() = %s", got)
	}
	if got := p.URL().String(); got != "http://proxy.example.com:8080" {
		t.Errorf("URL() = %s", got)
	}
	if err := p.validate(); err != nil {
		t.Errorf("validate() error = %v", err)
	}

	for _, bad := range []Proxy{{Host: "", Port: 80}, {Host: "h", Port: 0}, {Host: "h", Port: 65536}} {
		if err := bad.validate(); err == nil {
			t.Errorf("validate(%+v) should fail", bad)
		}
	}
}

func TestUserAgent(t *testing.T) {
	ua := userAgent()
	want := "SocketLabs-go/" + Version + ";go("
	if len(ua) <= len(want) || ua[:len(want)] != want || ua[len(ua)-1] != ')' {
		t.Errorf("userAgent() = %s", ua)
	}
}
