package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ClientConfig holds the connection settings for a broker API client.
// It is assembled once and treated as immutable after the client is constructed.
type ClientConfig struct {
	// BaseURL is the REST endpoint root (sandbox or live host).
	BaseURL string `json:"base_url" validate:"required,url"`
	// AccessToken is the bearer token sent on every request.
	AccessToken string `json:"access_token" validate:"required"`
	// AccountID scopes all trading operations to a single broker account.
	AccountID string `json:"account_id" validate:"required"`

	// Timeout is the total per-request deadline.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`
	// ConnectTimeout bounds connection establishment and the TLS handshake.
	ConnectTimeout time.Duration `json:"connect_timeout" validate:"min=1ms"`

	// InsecureSkipVerify disables TLS certificate verification.
	// It defeats transport security and exists only for local test rigs.
	InsecureSkipVerify bool `json:"insecure_skip_verify"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a ClientConfig with the standard timeouts:
// 5s to connect, 10s total per request, TLS verification enabled.
func DefaultConfig(baseURL, accessToken, accountID string) *ClientConfig {
	return &ClientConfig{
		BaseURL:        baseURL,
		AccessToken:    accessToken,
		AccountID:      accountID,
		Timeout:        10 * time.Second,
		ConnectTimeout: 5 * time.Second,
		LogLevel:       "info",
	}
}

var validate = validator.New()

// Validate checks that the required credential fields are present and the
// timeouts are sane. A missing or empty required field yields a configuration
// error.
func (c *ClientConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewConfigurationError(err)
	}
	return nil
}

// WithTimeout sets the total request timeout and returns the config for chaining.
func (c *ClientConfig) WithTimeout(timeout time.Duration) *ClientConfig {
	c.Timeout = timeout
	return c
}

// WithConnectTimeout sets the connect timeout and returns the config for chaining.
func (c *ClientConfig) WithConnectTimeout(timeout time.Duration) *ClientConfig {
	c.ConnectTimeout = timeout
	return c
}

// WithInsecureSkipVerify disables TLS certificate verification and returns the
// config for chaining. Do not use this against a live account.
func (c *ClientConfig) WithInsecureSkipVerify(skip bool) *ClientConfig {
	c.InsecureSkipVerify = skip
	return c
}
