package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultVersion   = 1
	DefaultPrecision = -1
	DefaultHistory   = 50
	DefaultLogLevel  = "warn"

	// FileName is the config file name inside the calc config directory.
	FileName = "config.json"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config defines calc configuration stored in config.json.
type Config struct {
	Version int `json:"version"`

	// Precision is the number of digits after the decimal point for
	// floating results (default -1 = shortest exact representation).
	Precision *int `json:"precision,omitempty"`

	// History is how many evaluated lines the interactive mode keeps (default 50).
	History *int `json:"history,omitempty"`

	Log *LogConfig `json:"log,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level *string `json:"level,omitempty"`

	// Development switches to human-readable console output.
	Development *bool `json:"development,omitempty"`

	// File redirects log output away from stderr when set.
	File *string `json:"file,omitempty"`
}

// GetPrecision returns the precision setting (default -1).
func (c Config) GetPrecision() int {
	if c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// GetHistory returns the history size (default 50).
func (c Config) GetHistory() int {
	if c.History == nil {
		return DefaultHistory
	}
	return *c.History
}

// GetLevel returns the log level (default warn).
func (c *LogConfig) GetLevel() string {
	if c == nil || c.Level == nil {
		return DefaultLogLevel
	}
	return *c.Level
}

// IsDevelopment returns whether console logging is enabled (default false).
func (c *LogConfig) IsDevelopment() bool {
	if c == nil || c.Development == nil {
		return false
	}
	return *c.Development
}

// GetFile returns the log file path (default "" = stderr).
func (c *LogConfig) GetFile() string {
	if c == nil || c.File == nil {
		return ""
	}
	return *c.File
}

// Validate checks that log config values are supported.
func (c *LogConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.Level != nil && !validLogLevels[*c.Level] {
		return fmt.Errorf("log level must be one of debug, info, warn, error, got %q", *c.Level)
	}
	return nil
}

// Default returns the default config.
func Default() Config {
	return Config{Version: DefaultVersion}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "calc", FileName), nil
}

// Load reads config from disk and applies defaults for zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config not found: %w", err)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

// LoadOrDefault reads config from disk, returning defaults if the file doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes a config to disk, creating the parent directory.
func Save(path string, cfg Config) error {
	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate ensures config values are within supported ranges.
func (c Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Precision != nil && (*c.Precision < -1 || *c.Precision > 17) {
		return fmt.Errorf("precision must be between -1 and 17, got %d", *c.Precision)
	}
	if c.History != nil && (*c.History < 1 || *c.History > 1000) {
		return fmt.Errorf("history must be between 1 and 1000, got %d", *c.History)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}
