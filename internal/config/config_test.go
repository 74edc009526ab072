package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"soundguard/internal/config"
)

func TestLoadDefaultConfigUsesEnvTokenAndExpandsPaths(t *testing.T) {
	t.Setenv("AUDD_API_TOKEN", "test-token")
	t.Setenv("SOUNDGUARD_API_TOKEN", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "soundguard")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Directory.Path != filepath.Join(wantState, "artists.db") {
		t.Fatalf("unexpected directory path: %q", cfg.Directory.Path)
	}
	if cfg.Paths.TempDir != "" {
		t.Fatalf("expected empty temp dir by default, got %q", cfg.Paths.TempDir)
	}
	if cfg.Recognition.APIToken != "test-token" {
		t.Fatalf("expected recognition token from env, got %q", cfg.Recognition.APIToken)
	}
	if cfg.Recognition.MaxAttempts != 3 {
		t.Fatalf("expected 3 recognition attempts, got %d", cfg.Recognition.MaxAttempts)
	}
	if cfg.RetryDelay() != 3*time.Second {
		t.Fatalf("expected 3s retry delay, got %s", cfg.RetryDelay())
	}
	if cfg.Policy.SimilarityThreshold != 0.7 {
		t.Fatalf("expected 0.7 similarity threshold, got %v", cfg.Policy.SimilarityThreshold)
	}
	if !cfg.Policy.BlockUnverifiedMatches {
		t.Fatal("expected unverified matches to be blocked by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	t.Setenv("AUDD_API_TOKEN", "")
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	payload := map[string]any{
		"paths": map[string]any{
			"state_dir": filepath.Join(dir, "state"),
			"temp_dir":  filepath.Join(dir, "scratch"),
		},
		"recognition": map[string]any{
			"api_token":           "file-token",
			"max_attempts":        5,
			"retry_delay_seconds": 1,
		},
		"policy": map[string]any{
			"similarity_threshold":     0.85,
			"block_unverified_matches": false,
		},
		"logging": map[string]any{
			"format": "JSON",
			"level":  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to exist, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Recognition.APIToken != "file-token" {
		t.Fatalf("unexpected token: %q", cfg.Recognition.APIToken)
	}
	if cfg.Recognition.MaxAttempts != 5 || cfg.RetryDelay() != time.Second {
		t.Fatalf("unexpected retry budget: %+v", cfg.Recognition)
	}
	if cfg.Policy.SimilarityThreshold != 0.85 || cfg.Policy.BlockUnverifiedMatches {
		t.Fatalf("unexpected policy: %+v", cfg.Policy)
	}
	if cfg.Paths.TempDir != filepath.Join(dir, "scratch") {
		t.Fatalf("unexpected temp dir: %q", cfg.Paths.TempDir)
	}
	if cfg.Directory.Path != filepath.Join(dir, "state", "artists.db") {
		t.Fatalf("unexpected directory path: %q", cfg.Directory.Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging values to be normalized, got %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, want := range []string{cfg.Paths.StateDir, cfg.Paths.TempDir} {
		if info, err := os.Stat(want); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", want, err)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[recognition]\nmax_retries = 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero attempts", func(c *config.Config) { c.Recognition.MaxAttempts = 0 }, "max_attempts"},
		{"too many attempts", func(c *config.Config) { c.Recognition.MaxAttempts = 50 }, "max_attempts"},
		{"negative delay", func(c *config.Config) { c.Recognition.RetryDelaySeconds = -1 }, "retry_delay_seconds"},
		{"zero timeout", func(c *config.Config) { c.Recognition.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"relative url", func(c *config.Config) { c.Recognition.BaseURL = "audd.io" }, "base_url"},
		{"threshold above one", func(c *config.Config) { c.Policy.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestRequireRecognitionToken(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireRecognitionToken(); err == nil || !strings.Contains(err.Error(), "AUDD_API_TOKEN") {
		t.Fatalf("expected missing token error, got %v", err)
	}
	cfg.Recognition.APIToken = "token"
	if err := cfg.RequireRecognitionToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Recognition.MaxAttempts != 3 || cfg.Policy.SimilarityThreshold != 0.7 {
		t.Fatalf("sample config diverges from defaults: %+v %+v", cfg.Recognition, cfg.Policy)
	}
}
