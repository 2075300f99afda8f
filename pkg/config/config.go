package config

import (
	"time"

	"lazyf1/pkg/ergast"
	"lazyf1/pkg/settings"
)

// Config is the dashboard's startup configuration. Runtime state the user
// changes while the app is open (season, selected race) lives in
// pkg/settings instead.
type Config struct {
	// Season is the year to show when no stored preference exists.
	Season int `koanf:"season"`

	// RefreshSeconds is the periodic panel refresh interval.
	RefreshSeconds int `koanf:"refresh_seconds"`

	// APIBaseURL points at an Ergast-compatible API.
	APIBaseURL string `koanf:"api_base_url"`

	// HTTPTimeoutSeconds bounds a single provider request.
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds"`

	// RequestsPerSecond is the courtesy limit on outbound requests.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// CacheDir holds the provider response cache. Empty disables caching.
	CacheDir string `koanf:"cache_dir"`

	// ScheduleTTLMinutes is how long a cached schedule stays fresh.
	ScheduleTTLMinutes int `koanf:"schedule_ttl_minutes"`

	// DBPath is the sqlite file for persisted prefs.
	DBPath string `koanf:"db_path"`
}

func New() *Config {
	return &Config{
		Season:             time.Now().Year(),
		RefreshSeconds:     300,
		APIBaseURL:         ergast.DefaultBaseURL,
		HTTPTimeoutSeconds: 30,
		RequestsPerSecond:  3,
		CacheDir:           "./cache",
		ScheduleTTLMinutes: 360,
		DBPath:             settings.DefaultDbName,
	}
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) ScheduleTTL() time.Duration {
	return time.Duration(c.ScheduleTTLMinutes) * time.Minute
}
