package config

import (
	"os"
	"strconv"
)

// FromEnv overlays LULU_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("LULU_API"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LULU_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LULU_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LULU_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LULU_CACHE_DEFAULT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheDefaultTTLSeconds = n
		}
	}
	if v := os.Getenv("LULU_FEED_RECONNECT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FeedDefault.ReconnectDelayMs = n
		}
	}
	if v := os.Getenv("LULU_FEED_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FeedDefault.BufferSize = n
		}
	}
}
