package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PROMPTPILOT_CONFIG", "/nonexistent/config.json")
	t.Setenv("PROMPTPILOT_SERVER_PORT", "9090")
	t.Setenv("PROMPTPILOT_LLM_MODEL", "test-model")
	t.Setenv("PROMPTPILOT_LLM_TEMPERATURE", "0.9")
	t.Setenv("PROMPTPILOT_LLM_ENABLED", "false")
	t.Setenv("PROMPTPILOT_CACHE_TTL_SECONDS", "120")
	t.Setenv("PROMPTPILOT_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 0.9, cfg.LLM.Temperature)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadInvalidEnvIgnored(t *testing.T) {
	t.Setenv("PROMPTPILOT_CONFIG", "/nonexistent/config.json")
	t.Setenv("PROMPTPILOT_SERVER_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port, "invalid values fall back to defaults")
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	cfg.LLM.Temperature = 5
	cfg.Cache.MaxEntries = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server port")
	assert.Contains(t, err.Error(), "temperature")
	assert.Contains(t, err.Error(), "max entries")
}

func TestValidateDisabledLLMSkipsLLMChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Enabled = false
	cfg.LLM.URL = ""
	cfg.LLM.MaxTokens = 0

	assert.NoError(t, cfg.Validate())
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "1h0m0s", cfg.CacheTTL().String())
	assert.Equal(t, "5m0s", cfg.CacheSweepInterval().String())
	assert.Equal(t, "5s", cfg.RefineTimeout().String())
	assert.Equal(t, "10s", cfg.LLMTimeout().String())
}
