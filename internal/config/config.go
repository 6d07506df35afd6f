package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FeedConfig carries per-feed subscription settings.
//
// ReconnectDelayMs is deliberately a per-feed setting rather than a single
// global: call sites historically used different fixed delays (1s for the
// sales feed, 5s for alerts), and the difference stays an explicit,
// testable choice here.
type FeedConfig struct {
	ReconnectDelayMs int `json:"reconnectDelayMs" yaml:"reconnectDelayMs"`
	BufferSize       int `json:"bufferSize" yaml:"bufferSize"`
}

// ReconnectDelay returns the configured delay as a duration.
func (f FeedConfig) ReconnectDelay() time.Duration {
	return time.Duration(f.ReconnectDelayMs) * time.Millisecond
}

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// APIBaseURL is the backend origin, e.g. http://127.0.0.1:8000.
	APIBaseURL string `json:"apiBaseUrl" yaml:"apiBaseUrl"`
	// DataDir holds feed archives and the token store.
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// Feeds maps feed kind (sales, orders, alerts, inventory, employees)
	// to its settings. Missing kinds fall back to FeedDefault.
	Feeds map[string]FeedConfig `json:"feeds" yaml:"feeds"`
	// FeedDefault applies to feed kinds absent from Feeds.
	FeedDefault FeedConfig `json:"feedDefault" yaml:"feedDefault"`
	// CacheDefaultTTLSeconds is the fallback TTL for REST response caching.
	CacheDefaultTTLSeconds int `json:"cacheDefaultTtlSeconds" yaml:"cacheDefaultTtlSeconds"`
	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	// LogFormat is text or json.
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		APIBaseURL: "http://127.0.0.1:8000",
		Feeds: map[string]FeedConfig{
			"sales":     {ReconnectDelayMs: 1000, BufferSize: 50},
			"orders":    {ReconnectDelayMs: 1000, BufferSize: 50},
			"alerts":    {ReconnectDelayMs: 5000, BufferSize: 20},
			"inventory": {ReconnectDelayMs: 5000, BufferSize: 50},
			"employees": {ReconnectDelayMs: 5000, BufferSize: 50},
		},
		FeedDefault:            FeedConfig{ReconnectDelayMs: 3000, BufferSize: 50},
		CacheDefaultTTLSeconds: 30,
		LogLevel:               "info",
		LogFormat:              "text",
	}
}

// CacheDefaultTTL returns the fallback response-cache TTL as a
// duration.
func (c Config) CacheDefaultTTL() time.Duration {
	return time.Duration(c.CacheDefaultTTLSeconds) * time.Second
}

// Feed returns the settings for the given feed kind, falling back to
// FeedDefault for unknown kinds or zero-valued fields.
func (c Config) Feed(kind string) FeedConfig {
	fc, ok := c.Feeds[kind]
	if !ok {
		return c.FeedDefault
	}
	if fc.ReconnectDelayMs <= 0 {
		fc.ReconnectDelayMs = c.FeedDefault.ReconnectDelayMs
	}
	if fc.BufferSize <= 0 {
		fc.BufferSize = c.FeedDefault.BufferSize
	}
	return fc
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
