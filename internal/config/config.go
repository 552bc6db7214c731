// Package config loads runtime settings for bazi from .bazi.toml, BAZI_*
// environment variables and command-line flags bound through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata" // Zone database for hosts without one.

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats accepted by the format key.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Config holds all runtime configuration for a bazi session.
type Config struct {
	HorizonAge    int    `mapstructure:"horizon_age"`
	Sect          int    `mapstructure:"sect"`
	Format        string `mapstructure:"format"`
	Lang          string `mapstructure:"lang"`
	Timezone      string `mapstructure:"timezone"`
	ArchivePath   string `mapstructure:"archive_path"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Workers       int    `mapstructure:"workers"`
	Verbose       bool   `mapstructure:"verbose"`
}

// DefaultArchivePath returns ~/.bazi/history.db, or a relative path when the
// home directory is unknown.
func DefaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bazi", "history.db")
	}
	return filepath.Join(home, ".bazi", "history.db")
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("horizon_age", 90)
	viper.SetDefault("sect", 2)
	viper.SetDefault("format", FormatText)
	viper.SetDefault("lang", "zh")
	viper.SetDefault("timezone", "Asia/Shanghai")
	viper.SetDefault("archive_path", DefaultArchivePath())
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("workers", 4)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	var errs []error
	if c.HorizonAge <= 0 {
		errs = append(errs, fmt.Errorf("%w: horizon_age must be positive, got %d", ErrInvalidConfig, c.HorizonAge))
	}
	if c.Sect != 1 && c.Sect != 2 {
		errs = append(errs, fmt.Errorf("%w: sect must be 1 or 2, got %d", ErrInvalidConfig, c.Sect))
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatTOML, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
