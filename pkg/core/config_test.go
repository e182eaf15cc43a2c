package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("https://api-fxpractice.example.com", "token-abc", "12345")

	assert.Equal(t, "https://api-fxpractice.example.com", config.BaseURL)
	assert.Equal(t, "token-abc", config.AccessToken)
	assert.Equal(t, "12345", config.AccountID)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 5*time.Second, config.ConnectTimeout)
	assert.False(t, config.InsecureSkipVerify)
	assert.Equal(t, "info", config.LogLevel)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *ClientConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid_config",
			config:  DefaultConfig("https://api-fxpractice.example.com", "token-abc", "12345"),
			wantErr: false,
		},
		{
			name:    "missing_base_url",
			config:  DefaultConfig("", "token-abc", "12345"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "missing_access_token",
			config:  DefaultConfig("https://api-fxpractice.example.com", "", "12345"),
			wantErr: true,
			errMsg:  "AccessToken",
		},
		{
			name:    "missing_account_id",
			config:  DefaultConfig("https://api-fxpractice.example.com", "token-abc", ""),
			wantErr: true,
			errMsg:  "AccountID",
		},
		{
			name:    "malformed_base_url",
			config:  DefaultConfig("not a url", "token-abc", "12345"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name: "invalid_timeout",
			config: &ClientConfig{
				BaseURL:        "https://api-fxpractice.example.com",
				AccessToken:    "token-abc",
				AccountID:      "12345",
				Timeout:        -1 * time.Second,
				ConnectTimeout: 5 * time.Second,
			},
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name: "invalid_log_level",
			config: DefaultConfig("https://api-fxpractice.example.com", "token-abc", "12345").
				withLogLevel("verbose"),
			wantErr: true,
			errMsg:  "LogLevel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsConfigurationError(err))
				assert.True(t, strings.Contains(err.Error(), tt.errMsg))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientConfig_Chaining(t *testing.T) {
	config := DefaultConfig("https://api-fxpractice.example.com", "token-abc", "12345").
		WithTimeout(20 * time.Second).
		WithConnectTimeout(2 * time.Second).
		WithInsecureSkipVerify(true)

	assert.Equal(t, 20*time.Second, config.Timeout)
	assert.Equal(t, 2*time.Second, config.ConnectTimeout)
	assert.True(t, config.InsecureSkipVerify)
}

func (c *ClientConfig) withLogLevel(level string) *ClientConfig {
	c.LogLevel = level
	return c
}
