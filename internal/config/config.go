package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Backend connection
	BackendURL string `yaml:"backend_url"`
	OEmbedURL  string `yaml:"oembed_url"`

	// Auth; empty disables bearer auth.
	APIKey string `yaml:"api_key"`

	// Per-action timeouts
	MetadataTimeout time.Duration `yaml:"metadata_timeout"`
	SummaryTimeout  time.Duration `yaml:"summary_timeout"`
	AskTimeout      time.Duration `yaml:"ask_timeout"`
	InsightsTimeout time.Duration `yaml:"insights_timeout"`
	EntitiesTimeout time.Duration `yaml:"entities_timeout"`

	// Chat sessions
	SessionTTL time.Duration `yaml:"session_ttl"`
	MaxHistory int           `yaml:"max_history"`

	// Render limits
	MaxRenderBytes int64 `yaml:"max_render_bytes"`

	// Rate limiting; zero RPS disables it.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port: "8090",

		BackendURL: "http://localhost:5000",
		OEmbedURL:  "https://www.youtube.com/oembed",

		MetadataTimeout: 10 * time.Second,
		SummaryTimeout:  120 * time.Second,
		AskTimeout:      60 * time.Second,
		InsightsTimeout: 90 * time.Second,
		EntitiesTimeout: 120 * time.Second,

		SessionTTL: 1 * time.Hour,
		MaxHistory: 10,

		MaxRenderBytes: 1 << 20, // 1MB

		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// VIDBRIEF_CONFIG (if any) and environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("VIDBRIEF_CONFIG"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	cfg.clamp()
	return cfg, nil
}

// LoadFile overlays the keys present in a YAML file onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envOr("PORT", c.Port)

	c.BackendURL = envOr("BACKEND_URL", c.BackendURL)
	c.OEmbedURL = envOr("OEMBED_URL", c.OEmbedURL)

	c.APIKey = envOr("VIDBRIEF_API_KEY", c.APIKey)

	c.MetadataTimeout = envDuration("METADATA_TIMEOUT", c.MetadataTimeout)
	c.SummaryTimeout = envDuration("SUMMARY_TIMEOUT", c.SummaryTimeout)
	c.AskTimeout = envDuration("ASK_TIMEOUT", c.AskTimeout)
	c.InsightsTimeout = envDuration("INSIGHTS_TIMEOUT", c.InsightsTimeout)
	c.EntitiesTimeout = envDuration("ENTITIES_TIMEOUT", c.EntitiesTimeout)

	c.SessionTTL = envDuration("SESSION_TTL", c.SessionTTL)
	c.MaxHistory = envInt("MAX_HISTORY", c.MaxHistory)

	c.MaxRenderBytes = envInt64("MAX_RENDER_BYTES", c.MaxRenderBytes)

	c.RateLimitRPS = envFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = envInt("RATE_LIMIT_BURST", c.RateLimitBurst)
}

// clamp replaces out-of-range values with defaults.
func (c *Config) clamp() {
	def := Default()
	if c.Port == "" {
		c.Port = def.Port
	}
	for _, d := range []struct {
		v        *time.Duration
		fallback time.Duration
	}{
		{&c.MetadataTimeout, def.MetadataTimeout},
		{&c.SummaryTimeout, def.SummaryTimeout},
		{&c.AskTimeout, def.AskTimeout},
		{&c.InsightsTimeout, def.InsightsTimeout},
		{&c.EntitiesTimeout, def.EntitiesTimeout},
		{&c.SessionTTL, def.SessionTTL},
	} {
		if *d.v <= 0 {
			*d.v = d.fallback
		}
	}
	if c.MaxHistory < 0 {
		c.MaxHistory = def.MaxHistory
	}
	if c.MaxRenderBytes <= 0 {
		c.MaxRenderBytes = def.MaxRenderBytes
	}
	if c.RateLimitRPS < 0 {
		c.RateLimitRPS = 0
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = def.RateLimitBurst
	}
}

func (c Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("BACKEND_URL is required")
	}
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL %q is not an absolute url", c.BackendURL)
	}
	if c.OEmbedURL == "" {
		return errors.New("OEMBED_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
