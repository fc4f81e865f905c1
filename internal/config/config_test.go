package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VIDBRIEF_CONFIG", "PORT", "BACKEND_URL", "OEMBED_URL", "VIDBRIEF_API_KEY",
		"METADATA_TIMEOUT", "SUMMARY_TIMEOUT", "ASK_TIMEOUT", "INSIGHTS_TIMEOUT",
		"ENTITIES_TIMEOUT", "SESSION_TTL", "MAX_HISTORY", "MAX_RENDER_BYTES",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("BACKEND_URL", "http://backend:5000")
	t.Setenv("ASK_TIMEOUT", "5s")
	t.Setenv("MAX_HISTORY", "3")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.BackendURL != "http://backend:5000" {
		t.Errorf("expected backend url override, got %s", cfg.BackendURL)
	}
	if cfg.AskTimeout != 5*time.Second {
		t.Errorf("expected ask timeout 5s, got %s", cfg.AskTimeout)
	}
	if cfg.MaxHistory != 3 {
		t.Errorf("expected max history 3, got %d", cfg.MaxHistory)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("expected rps 0.5, got %f", cfg.RateLimitRPS)
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUMMARY_TIMEOUT", "soon")
	t.Setenv("MAX_RENDER_BYTES", "-5")
	t.Setenv("SESSION_TTL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg.SummaryTimeout != def.SummaryTimeout {
		t.Errorf("expected default summary timeout, got %s", cfg.SummaryTimeout)
	}
	if cfg.MaxRenderBytes != def.MaxRenderBytes {
		t.Errorf("expected default max render bytes, got %d", cfg.MaxRenderBytes)
	}
	if cfg.SessionTTL != def.SessionTTL {
		t.Errorf("expected default session ttl, got %s", cfg.SessionTTL)
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vidbrief.yaml")
	yamlDoc := "backend_url: http://from-file:5000\nsummary_timeout: 45s\nmax_history: 4\napi_key: file-key\n"
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VIDBRIEF_CONFIG", path)
	t.Setenv("MAX_HISTORY", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://from-file:5000" {
		t.Errorf("expected backend url from file, got %s", cfg.BackendURL)
	}
	if cfg.SummaryTimeout != 45*time.Second {
		t.Errorf("expected summary timeout 45s, got %s", cfg.SummaryTimeout)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("expected api key from file, got %q", cfg.APIKey)
	}
	if cfg.MaxHistory != 7 {
		t.Errorf("expected env to win over file, got %d", cfg.MaxHistory)
	}
	if cfg.Port != Default().Port {
		t.Errorf("expected untouched keys to keep defaults, got port %s", cfg.Port)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("max_history: [not, an, int]\n"), 0o600)
	t.Setenv("VIDBRIEF_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIDBRIEF_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty backend", func(c *Config) { c.BackendURL = "" }, true},
		{"relative backend", func(c *Config) { c.BackendURL = "backend:5000/api" }, true},
		{"empty oembed", func(c *Config) { c.OEmbedURL = "" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}
