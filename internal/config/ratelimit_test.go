package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 6*time.Second, cfg.RefillInterval)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CAPACITY", "3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
}

func TestLoadRateLimitConfig_ClampsInvalid(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	// TTL is raised to cover several refill intervals.
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval)
}
