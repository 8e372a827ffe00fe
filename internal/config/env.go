// Package config provides environment variable overrides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	DBPath     string   `env:"MOYENNE_DB_PATH"`
	ConfigPath string   `env:"MOYENNE_CONFIG_PATH"`
	LogLevel   string   `env:"MOYENNE_LOG_LEVEL"`
	TDWeight   *float64 `env:"MOYENNE_TD_WEIGHT"`
	Scale      *float64 `env:"MOYENNE_SCALE"`
}

// LoadEnv reads EnvConfig and fills unset paths with XDG defaults.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath()
	}
	return cfg, nil
}
