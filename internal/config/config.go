// Package config provides configuration loading for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/workflow"
)

// Environment variable names.
const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvRatingThreshold = "RATING_THRESHOLD"
	EnvMaxIterations   = "MAX_ITERATIONS"
	EnvLiteModel       = "STAR_LITE_MODEL"
	EnvStandardModel   = "STAR_STANDARD_MODEL"
	EnvAdvancedModel   = "STAR_ADVANCED_MODEL"
)

// Config holds the runtime configuration. All fields are optional in the
// JSON file; missing values come from environment variables or defaults.
type Config struct {
	APIKey          string  `json:"api_key,omitempty"`          // Gemini API key
	DatabaseURL     string  `json:"database_url,omitempty"`     // PostgreSQL connection URL
	RatingThreshold float64 `json:"rating_threshold,omitempty"` // Loop stop threshold (0-5)
	MaxIterations   int     `json:"max_iterations,omitempty"`   // Critique iteration cap
	Verbose         bool    `json:"verbose,omitempty"`          // Print detailed progress

	// Per-tier model overrides
	LiteModel     string `json:"lite_model,omitempty"`
	StandardModel string `json:"standard_model,omitempty"`
	AdvancedModel string `json:"advanced_model,omitempty"`
}

// LoadFile loads configuration from a JSON file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the optional JSON file at path, then overlays environment
// variables. Environment values win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvRatingThreshold); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRatingThreshold, v, err)
		}
		c.RatingThreshold = threshold
	}
	if v := os.Getenv(EnvMaxIterations); v != "" {
		iterations, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxIterations, v, err)
		}
		c.MaxIterations = iterations
	}
	if v := os.Getenv(EnvLiteModel); v != "" {
		c.LiteModel = v
	}
	if v := os.Getenv(EnvStandardModel); v != "" {
		c.StandardModel = v
	}
	if v := os.Getenv(EnvAdvancedModel); v != "" {
		c.AdvancedModel = v
	}
	return nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set %s)", EnvAPIKey)
	}
	if c.RatingThreshold < 0 || c.RatingThreshold > 5 {
		return fmt.Errorf("config error: 'rating_threshold' must be between 0 and 5")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	return nil
}

// WorkflowConfig derives the loop parameters, applying defaults for unset fields.
func (c *Config) WorkflowConfig() workflow.Config {
	cfg := workflow.DefaultConfig()
	if c.RatingThreshold > 0 {
		cfg.RatingThreshold = c.RatingThreshold
	}
	if c.MaxIterations > 0 {
		cfg.MaxIterations = c.MaxIterations
	}
	return cfg
}

// LLMConfig derives the model configuration, applying per-tier overrides.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	if c.LiteModel != "" {
		cfg = cfg.WithModel(llm.TierLite, c.LiteModel)
	}
	if c.StandardModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.StandardModel)
	}
	if c.AdvancedModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.AdvancedModel)
	}
	return cfg
}
