package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.RateLimit != DefaultRateLimit {
		t.Errorf("RateLimit = %f, want %f", cfg.Server.RateLimit, DefaultRateLimit)
	}
	if cfg.Cache.Capacity != DefaultCacheCapacity {
		t.Errorf("Capacity = %d, want %d", cfg.Cache.Capacity, DefaultCacheCapacity)
	}
	if cfg.Model.Path != DefaultModelPath {
		t.Errorf("Model.Path = %q, want %q", cfg.Model.Path, DefaultModelPath)
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.AI.APIKey)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9000"
  rate_limit: 5
ai:
  api_key: file-key
  models:
    - model-a
    - model-b
cache:
  capacity: 12
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.RateLimit != 5 {
		t.Errorf("RateLimit = %f, want 5", cfg.Server.RateLimit)
	}
	if cfg.AI.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.AI.APIKey)
	}
	if len(cfg.AI.Models) != 2 || cfg.AI.Models[0] != "model-a" {
		t.Errorf("Models = %v", cfg.AI.Models)
	}
	if cfg.Cache.Capacity != 12 {
		t.Errorf("Capacity = %d, want 12", cfg.Cache.Capacity)
	}
	// Unset fields still get defaults.
	if cfg.Model.DataDir != DefaultDataDir {
		t.Errorf("DataDir = %q, want %q", cfg.Model.DataDir, DefaultDataDir)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9000\"\nai:\n  api_key: file-key\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TRUTHSHIELD_ADDR", ":7777")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("TRUTHSHIELD_AI_MODELS", "m1, m2 ,m3")
	t.Setenv("TRUTHSHIELD_AI_TIMEOUT", "30s")
	t.Setenv("TRUTHSHIELD_CACHE_CAPACITY", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":7777" {
		t.Errorf("Addr = %q, want :7777", cfg.Server.Addr)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.AI.APIKey)
	}
	want := []string{"m1", "m2", "m3"}
	if len(cfg.AI.Models) != 3 {
		t.Fatalf("Models = %v, want %v", cfg.AI.Models, want)
	}
	for i := range want {
		if cfg.AI.Models[i] != want[i] {
			t.Errorf("Models[%d] = %q, want %q", i, cfg.AI.Models[i], want[i])
		}
	}
	if cfg.AI.AttemptTimeout != 30*time.Second {
		t.Errorf("AttemptTimeout = %v, want 30s", cfg.AI.AttemptTimeout)
	}
	if cfg.Cache.Capacity != 3 {
		t.Errorf("Capacity = %d, want 3", cfg.Cache.Capacity)
	}
}

func TestEnvIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("TRUTHSHIELD_CACHE_CAPACITY", "not-a-number")
	t.Setenv("TRUTHSHIELD_RATE_LIMIT", "fast")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cache.Capacity != DefaultCacheCapacity {
		t.Errorf("Capacity = %d, want default", cfg.Cache.Capacity)
	}
	if cfg.Server.RateLimit != DefaultRateLimit {
		t.Errorf("RateLimit = %f, want default", cfg.Server.RateLimit)
	}
}
