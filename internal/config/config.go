// Package config loads service configuration from an optional YAML file,
// then applies environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Defaults for unset fields.
const (
	DefaultAddr          = ":8000"
	DefaultModelPath     = "models/truthshield.db"
	DefaultDataDir       = "data"
	DefaultCacheCapacity = 128
	DefaultRateLimit     = 10.0
	DefaultRateBurst     = 20
)

// Config is the full runtime configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Model  ModelConfig  `yaml:"model"`
	Cache  CacheConfig  `yaml:"cache"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// RateLimit is sustained requests per second per server; RateBurst is
	// the allowed burst above it.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// AIConfig controls the remote fact-check path. An empty APIKey disables it.
type AIConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Models         []string      `yaml:"models"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
}

// ModelConfig points at the trained artifacts and training data.
type ModelConfig struct {
	Path    string `yaml:"path"`
	DataDir string `yaml:"data_dir"`
}

// CacheConfig bounds the verdict cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// Load reads the YAML file at path if it exists, overlays environment
// variables and fills defaults. A missing file is not an error; a present
// but malformed file is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env and defaults
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = envString("TRUTHSHIELD_ADDR", c.Server.Addr)
	c.Server.RateLimit = envFloat("TRUTHSHIELD_RATE_LIMIT", c.Server.RateLimit)
	c.Server.RateBurst = envInt("TRUTHSHIELD_RATE_BURST", c.Server.RateBurst)

	c.AI.APIKey = envString("GEMINI_API_KEY", c.AI.APIKey)
	c.AI.BaseURL = envString("TRUTHSHIELD_AI_BASE_URL", c.AI.BaseURL)
	c.AI.Models = envStringSlice("TRUTHSHIELD_AI_MODELS", c.AI.Models)
	c.AI.AttemptTimeout = envDuration("TRUTHSHIELD_AI_TIMEOUT", c.AI.AttemptTimeout)

	c.Model.Path = envString("TRUTHSHIELD_MODEL_PATH", c.Model.Path)
	c.Model.DataDir = envString("TRUTHSHIELD_DATA_DIR", c.Model.DataDir)

	c.Cache.Capacity = envInt("TRUTHSHIELD_CACHE_CAPACITY", c.Cache.Capacity)
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = DefaultRateBurst
	}
	if c.Model.Path == "" {
		c.Model.Path = DefaultModelPath
	}
	if c.Model.DataDir == "" {
		c.Model.DataDir = DefaultDataDir
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = DefaultCacheCapacity
	}
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envStringSlice(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
