package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for PromptPilot
type Config struct {
	LLM      LLMConfig      `json:"llm"`
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Cache    CacheConfig    `json:"cache"`
	Enhancer EnhancerConfig `json:"enhancer"`
}

// LLMConfig holds the refine provider configuration (OpenAI-compatible)
type LLMConfig struct {
	URL            string  `json:"url"`
	APIKey         string  `json:"api_key"`
	Model          string  `json:"model"`
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float64 `json:"temperature"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	Enabled        bool    `json:"enabled"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	PostgresURL string `json:"postgres_url"`
}

// ServerConfig holds API server configuration
type ServerConfig struct {
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"cors_origins"`
}

// CacheConfig holds result cache tuning
type CacheConfig struct {
	TTLSeconds           int `json:"ttl_seconds"`
	MaxEntries           int `json:"max_entries"`
	SweepIntervalSeconds int `json:"sweep_interval_seconds"`
}

// EnhancerConfig holds pipeline tuning
type EnhancerConfig struct {
	RefineTimeoutSeconds int `json:"refine_timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			URL:            "http://localhost:8000/v1",
			APIKey:         "",
			Model:          "Qwen/Qwen3-8B-AWQ",
			MaxTokens:      2048,
			Temperature:    0.3,
			TimeoutSeconds: 10,
			Enabled:        true,
		},
		Database: DatabaseConfig{
			PostgresURL: "",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Cache: CacheConfig{
			TTLSeconds:           3600,
			MaxEntries:           10000,
			SweepIntervalSeconds: 300,
		},
		Enhancer: EnhancerConfig{
			RefineTimeoutSeconds: 5,
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// envBool loads a boolean environment variable into the target pointer if set and valid
func envBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// envStringSlice loads a comma-separated environment variable into a string slice
func envStringSlice(key string, target *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			*target = result
		}
	}
}

// Load loads configuration from the config file and environment variables
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	envString("PROMPTPILOT_LLM_URL", &cfg.LLM.URL)
	envString("PROMPTPILOT_LLM_API_KEY", &cfg.LLM.APIKey)
	envString("PROMPTPILOT_LLM_MODEL", &cfg.LLM.Model)
	envInt("PROMPTPILOT_LLM_MAX_TOKENS", &cfg.LLM.MaxTokens)
	envFloat("PROMPTPILOT_LLM_TEMPERATURE", &cfg.LLM.Temperature)
	envInt("PROMPTPILOT_LLM_TIMEOUT_SECONDS", &cfg.LLM.TimeoutSeconds)
	envBool("PROMPTPILOT_LLM_ENABLED", &cfg.LLM.Enabled)

	envString("PROMPTPILOT_POSTGRES_URL", &cfg.Database.PostgresURL)

	envString("PROMPTPILOT_SERVER_HOST", &cfg.Server.Host)
	envInt("PROMPTPILOT_SERVER_PORT", &cfg.Server.Port)
	envStringSlice("PROMPTPILOT_CORS_ORIGINS", &cfg.Server.CORSOrigins)

	envInt("PROMPTPILOT_CACHE_TTL_SECONDS", &cfg.Cache.TTLSeconds)
	envInt("PROMPTPILOT_CACHE_MAX_ENTRIES", &cfg.Cache.MaxEntries)
	envInt("PROMPTPILOT_CACHE_SWEEP_INTERVAL_SECONDS", &cfg.Cache.SweepIntervalSeconds)

	envInt("PROMPTPILOT_REFINE_TIMEOUT_SECONDS", &cfg.Enhancer.RefineTimeoutSeconds)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CacheSweepInterval returns the sweep interval as a duration.
func (c *Config) CacheSweepInterval() time.Duration {
	return time.Duration(c.Cache.SweepIntervalSeconds) * time.Second
}

// LLMTimeout returns the outbound LLM request timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// RefineTimeout returns the refine step budget as a duration.
func (c *Config) RefineTimeout() time.Duration {
	return time.Duration(c.Enhancer.RefineTimeoutSeconds) * time.Second
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}

	if c.LLM.Enabled {
		if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
			errs = append(errs, "LLM temperature must be between 0 and 2")
		}
		if c.LLM.MaxTokens < 1 {
			errs = append(errs, "LLM max_tokens must be positive")
		}
		if c.LLM.URL == "" {
			errs = append(errs, "LLM URL is required when the refiner is enabled")
		} else if !isValidURL(c.LLM.URL) {
			errs = append(errs, "LLM URL must be a valid URL")
		}
		if c.LLM.TimeoutSeconds < 1 {
			errs = append(errs, "LLM timeout must be at least 1 second")
		}
	}

	if c.Database.PostgresURL != "" && !isValidURL(c.Database.PostgresURL) {
		errs = append(errs, "PostgreSQL URL must be a valid URL")
	}

	if c.Cache.TTLSeconds < 1 {
		errs = append(errs, "cache TTL must be at least 1 second")
	}
	if c.Cache.MaxEntries < 1 {
		errs = append(errs, "cache max entries must be positive")
	}
	if c.Cache.SweepIntervalSeconds < 1 {
		errs = append(errs, "cache sweep interval must be at least 1 second")
	}

	if c.Enhancer.RefineTimeoutSeconds < 1 {
		errs = append(errs, "refine timeout must be at least 1 second")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	if path := os.Getenv("PROMPTPILOT_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}

	configDir := filepath.Join(homeDir, ".config", "promptpilot")
	configPath := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	altPath := filepath.Join(homeDir, ".promptpilot", "config.json")
	if _, err := os.Stat(altPath); err == nil {
		return altPath
	}

	return configPath
}
