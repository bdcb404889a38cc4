// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the engine configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or
// must be provided via CLI flags / environment.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Matching
	FuzzyThreshold float64 `json:"fuzzy_threshold,omitempty"` // Minimum fuzzy similarity score (0.0-1.0)

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON logs instead of console output
	Verbose bool `json:"verbose,omitempty"`  // Enable debug-level logging

	// Rate limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"` // Requests per client per minute
	RateLimitBurst     int `json:"rate_limit_burst,omitempty"`      // Burst capacity per client
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills a Config from environment variables. Used as the lowest
// precedence layer below config file values and CLI flags.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogJSON:     os.Getenv("LOG_JSON") == "true",
		Verbose:     os.Getenv("VERBOSE") == "true",
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if threshold, err := strconv.ParseFloat(os.Getenv("FUZZY_THRESHOLD"), 64); err == nil {
		cfg.FuzzyThreshold = threshold
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("config error: 'fuzzy_threshold' must be between 0.0 and 1.0")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.FuzzyThreshold == 0 {
		result.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if !result.LogJSON {
		result.LogJSON = defaults.LogJSON
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	return result
}
