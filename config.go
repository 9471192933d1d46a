package socketlabs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is a file or environment based client configuration.
//
// Example YAML:
//
//	server_id: 12345
//	api_key: "..."
//	request_timeout: 120
//	retries: 2
//	proxy:
//	  host: proxy.example.com
//	  port: 8080
type Config struct {
	ServerID int    `yaml:"server_id"`
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	// RequestTimeout is the per-attempt timeout in seconds.
	RequestTimeout int          `yaml:"request_timeout"`
	Retries        int          `yaml:"retries"`
	Proxy          *ProxyConfig `yaml:"proxy"`
	LogLevel       string       `yaml:"log_level"`
}

// ProxyConfig holds forward proxy settings.
type ProxyConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Environment variables read by LoadConfig and LoadConfigFromEnv.
const (
	EnvServerID       = "SOCKETLABS_SERVER_ID"
	EnvAPIKey         = "SOCKETLABS_INJECTION_API_KEY"
	EnvEndpoint       = "SOCKETLABS_ENDPOINT"
	EnvRequestTimeout = "SOCKETLABS_REQUEST_TIMEOUT"
	EnvRetries        = "SOCKETLABS_RETRIES"
	EnvProxyHost      = "SOCKETLABS_PROXY_HOST"
	EnvProxyPort      = "SOCKETLABS_PROXY_PORT"
	EnvLogLevel       = "SOCKETLABS_LOG_LEVEL"
)

// LoadConfigFromEnv loads configuration from environment variables with
// defaults for everything that is unset.
func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a YAML file as the base layer, then
// overrides it with environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Endpoint = DefaultEndpoint
	c.RequestTimeout = int(DefaultRequestTimeout / time.Second)
	c.LogLevel = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() error {
	var err error
	if v := os.Getenv(EnvServerID); v != "" {
		if c.ServerID, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvServerID, err)
		}
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if c.RequestTimeout, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
	}
	if v := os.Getenv(EnvRetries); v != "" {
		if c.Retries, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRetries, err)
		}
	}

	if v := os.Getenv(EnvProxyHost); v != "" {
		if c.Proxy == nil {
			c.Proxy = &ProxyConfig{}
		}
		c.Proxy.Host = v
	}
	if v := os.Getenv(EnvProxyPort); v != "" {
		if c.Proxy == nil {
			c.Proxy = &ProxyConfig{}
		}
		if c.Proxy.Port, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvProxyPort, err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Options converts the configuration into client options. The log level is
// not applied; see Level.
func (c *Config) Options() []Option {
	opts := []Option{
		WithRetries(c.Retries),
		WithRequestTimeout(time.Duration(c.RequestTimeout) * time.Second),
	}
	if c.Endpoint != "" {
		opts = append(opts, WithEndpoint(c.Endpoint))
	}
	if c.Proxy != nil && c.Proxy.Host != "" {
		opts = append(opts, WithProxy(c.Proxy.Host, c.Proxy.Port))
	}
	return opts
}

// Level parses LogLevel. An empty level is info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewClient creates a client from the configuration. Additional options are
// applied after the configured ones.
func (c *Config) NewClient(opts ...Option) (*Client, error) {
	return New(c.ServerID, c.APIKey, append(c.Options(), opts...)...)
}
