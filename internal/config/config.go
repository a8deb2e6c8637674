package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config carries everything the binary needs, sourced from the environment.
type Config struct {
	// Remote store
	StoreURL     string        // e.g. https://xyz.supabase.co/rest/v1
	StoreKey     string        // rides in both auth headers
	StoreTimeout time.Duration // 0 keeps the transport default

	// External content source
	SourceURL     string
	SourceKey     string
	SourceTimeout time.Duration

	// Local state
	DataDir  string
	CacheTTL time.Duration

	// Refresh loop
	RefreshInterval time.Duration

	LogLevel string
}

// FromEnv reads configuration with sensible defaults for anything unset.
func FromEnv() Config {
	return Config{
		StoreURL:        getenv("STORE_URL", ""),
		StoreKey:        getenv("STORE_KEY", ""),
		StoreTimeout:    getenvd("STORE_TIMEOUT", 0),
		SourceURL:       getenv("SOURCE_URL", "https://newsdata.io/api/1/news"),
		SourceKey:       getenv("SOURCE_KEY", ""),
		SourceTimeout:   getenvd("SOURCE_TIMEOUT", 15*time.Second),
		DataDir:         getenv("DATA_DIR", "data"),
		CacheTTL:        getenvd("CACHE_TTL", 30*time.Minute),
		RefreshInterval: getenvd("REFRESH_INTERVAL", 10*time.Minute),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

// CachePath is the cache file inside DataDir.
func (c Config) CachePath() string { return filepath.Join(c.DataDir, "cache.json") }

// IdentityPath is the device settings file inside DataDir.
func (c Config) IdentityPath() string { return filepath.Join(c.DataDir, "device.json") }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvd(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
