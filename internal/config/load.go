package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment overrides. A double underscore
// separates key segments so that keys containing single underscores stay
// addressable, e.g. DATAREFINERY_PATHS__OUTPUT_FOLDER.
const envPrefix = "DATAREFINERY_"

// Load reads the YAML config at path, applies environment overrides and
// defaults, validates, and returns the typed configuration. Validation
// failures are returned as a *ConfigError listing every offending field
// path; nothing downstream runs on an invalid config.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults that must be overridable to false go in first.
	if err := k.Load(confmap.Provider(map[string]any{
		"date_cleaning.enabled": true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	if err := AsError(Validate(&cfg)); err != nil {
		return nil, err
	}
	return &cfg, nil
}
