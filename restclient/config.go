package restclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/restkit/retry"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures a client facade. It is read exclusively by the facade
// and never mutated after New.
type Config struct {
	// BaseURL is the base URL prepended to all request paths. Required.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-attempt request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests. Call-site
	// headers win on conflict.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MaxRetries bounds total attempts to MaxRetries+1. Defaults to 3;
	// set a negative value to disable retries entirely.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// BackoffBase is the wait before the first retry; subsequent waits
	// double per attempt. Defaults to 500ms.
	BackoffBase time.Duration `yaml:"backoff_base" mapstructure:"backoff_base"`

	// BackoffCap bounds the backoff growth. Defaults to 30s.
	BackoffCap time.Duration `yaml:"backoff_cap" mapstructure:"backoff_cap"`

	// RetryStatus overrides the retriable status set (default: 429 and 5xx).
	RetryStatus func(status int) bool `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = retry.DefaultMaxRetries
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = retry.DefaultBackoffBase
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = retry.DefaultBackoffCap
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("restclient: base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("restclient: invalid base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("restclient: base_url must be absolute (got: %s)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("restclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// policy derives the retry policy from the configuration. A negative
// MaxRetries clamps to zero retries.
func (c *Config) policy() retry.Policy {
	return retry.NewPolicy(c.MaxRetries, c.BackoffBase, c.BackoffCap, c.RetryStatus)
}
