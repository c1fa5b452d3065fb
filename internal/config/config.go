// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Default configuration constants.
const (
	defaultAddr                = ":8080"
	defaultLogLevel            = "info"
	defaultCachePath           = "redzone.db"
	defaultSeason              = 2024
	defaultMatchupDepth        = 5
	defaultMaxLeaderboardLimit = 100
	defaultFetchTimeoutMS      = int(30 * time.Second / time.Millisecond)
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CachePath is the sqlite file backing the season cache.
	// ":memory:" keeps the cache ephemeral.
	CachePath string `koanf:"cache_path"`

	// DefaultSeason is used when a query omits ?season=.
	DefaultSeason int `koanf:"default_season"`

	// MatchupDepth caps producers per team in matchup rows.
	MatchupDepth int `koanf:"matchup_depth"`

	// MaxLeaderboardLimit caps GET /leaders?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// ProviderBaseURL overrides the nflverse release download base.
	ProviderBaseURL string `koanf:"provider_base_url"`

	// ProviderUserAgent is sent on upstream fetches.
	ProviderUserAgent string `koanf:"provider_user_agent"`

	// FetchTimeoutMS bounds a single upstream fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
}

// Option applies a configuration option to a Config.
type Option func(*Config)

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Addr = addr
		}
	}
}

// WithDefaultSeason sets the fallback season for queries.
func WithDefaultSeason(season int) Option {
	return func(c *Config) {
		if season > 0 {
			c.DefaultSeason = season
		}
	}
}

// New builds a Config with defaults, then applies options.
func New(opts ...Option) *Config {
	c := &Config{
		LogLevel:            defaultLogLevel,
		Addr:                defaultAddr,
		CachePath:           defaultCachePath,
		DefaultSeason:       defaultSeason,
		MatchupDepth:        defaultMatchupDepth,
		MaxLeaderboardLimit: defaultMaxLeaderboardLimit,
		FetchTimeoutMS:      defaultFetchTimeoutMS,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTimeout returns the upstream fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
