// SPDX-License-Identifier: MIT

// Package config loads lveq settings from LVLEQ_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every variable, e.g. LVLEQ_LOG_LEVEL.
const Prefix = "lvleq"

// Config holds all command configuration.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
	LogFile  string `envconfig:"LOG_FILE"`

	// Precision is the number of significant digits for reals; -1 prints the shortest exact form.
	Precision int `envconfig:"PRECISION" default:"-1"`

	// Epsilon overrides the singularity tolerance of LU-based kernels; 0 keeps the default.
	Epsilon     float64 `envconfig:"EPSILON" default:"0"`
	AllowNaNInf bool    `envconfig:"ALLOW_NAN_INF" default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Epsilon < 0 {
		return nil, fmt.Errorf("failed to load config: negative epsilon %g", cfg.Epsilon)
	}

	return &cfg, nil
}

// Default returns the configuration used when the environment sets nothing.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		Precision: -1,
	}
}
