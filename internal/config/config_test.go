package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("YOUTUBE_CHANNEL_HANDLE", "somehandle")
	t.Setenv("OUTBOUND_TIMEOUT", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, "somehandle", cfg.ChannelHandle)
	assert.Equal(t, "https://www.youtube.com/@somehandle", cfg.ChannelURL)
	assert.Equal(t, 10*time.Second, cfg.OutboundTimeout)
	assert.Equal(t, 50, cfg.FallbackMaxVideos)
	assert.Equal(t, 6, cfg.FeaturedCount)
	assert.False(t, cfg.HasAPIKey())
	assert.False(t, cfg.R2Enabled())
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"cap too large", func(c *Config) { c.FallbackMaxVideos = 51 }},
		{"cap zero", func(c *Config) { c.FallbackMaxVideos = 0 }},
		{"no handle", func(c *Config) { c.ChannelHandle = "" }},
		{"handle with at sign", func(c *Config) { c.ChannelHandle = "@someone" }},
		{"bad channel url", func(c *Config) { c.ChannelURL = "not a url" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"zero outbound timeout", func(c *Config) { c.OutboundTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "key")
	t.Setenv("R2_ENDPOINT", "https://acct.r2.cloudflarestorage.com")
	t.Setenv("R2_ACCESS_KEY", "ak")
	t.Setenv("R2_SECRET_ACCESS_KEY", "sk")
	t.Setenv("FALLBACK_MAX_VIDEOS", "x")

	cfg := FromEnv()
	assert.True(t, cfg.HasAPIKey())
	assert.True(t, cfg.R2Enabled())
	assert.Equal(t, 50, cfg.FallbackMaxVideos)
}
