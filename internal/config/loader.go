package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if REDZONE_CONFIG is set
//  3. env (prefix REDZONE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("REDZONE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: REDZONE_ADDR, REDZONE_CACHE_PATH, ...
	// Map env keys like REDZONE_CACHE_PATH -> cache_path (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("REDZONE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "redzone_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DefaultSeason <= 0 {
		return nil, fmt.Errorf("%w: default_season must be positive", ErrInvalidConfig)
	}
	if cfg.MaxLeaderboardLimit <= 0 {
		return nil, fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
