package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for environment overrides (CALC_PRECISION, ...).
const EnvPrefix = "CALC"

// envOverrides mirrors the subset of Config that may be set from the
// environment. Nil fields were not set.
type envOverrides struct {
	Precision *int    `envconfig:"PRECISION"`
	History   *int    `envconfig:"HISTORY"`
	LogLevel  *string `envconfig:"LOG_LEVEL"`
	LogDev    *bool   `envconfig:"LOG_DEV"`
	LogFile   *string `envconfig:"LOG_FILE"`
}

// ApplyEnv overlays CALC_* environment variables on cfg and validates the result.
func ApplyEnv(cfg Config) (Config, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if env.Precision != nil {
		cfg.Precision = env.Precision
	}
	if env.History != nil {
		cfg.History = env.History
	}
	if env.LogLevel != nil || env.LogDev != nil || env.LogFile != nil {
		log := LogConfig{}
		if cfg.Log != nil {
			log = *cfg.Log
		}
		if env.LogLevel != nil {
			log.Level = env.LogLevel
		}
		if env.LogDev != nil {
			log.Development = env.LogDev
		}
		if env.LogFile != nil {
			log.File = env.LogFile
		}
		cfg.Log = &log
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the file at path (defaults when missing) and applies the
// environment overlay.
func Resolve(path string) (Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg)
}
