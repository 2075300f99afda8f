package config

import (
	"errors"
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
//  2. file (YAML) if LAZYF1_CONFIG is set
//  3. env (prefix LAZYF1_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("LAZYF1_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: LAZYF1_SEASON, LAZYF1_REFRESH_SECONDS, ...
	// Map env keys like LAZYF1_REFRESH_SECONDS -> refresh_seconds.
	envProvider := env.Provider("LAZYF1_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "lazyf1_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.RefreshSeconds <= 0 {
		return nil, errors.New("refresh_seconds must be positive")
	}
	// the provider's data starts with the 1950 championship
	if cfg.Season < 1950 {
		return nil, errors.New("season must be 1950 or later")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api_base_url must not be empty")
	}
	return &cfg, nil
}
