/*
config.go - Runtime configuration for the dtconv binary

PURPOSE:
  Collects settings from .dtconv.yaml, DTCONV_* environment variables and
  command-line flags (all through viper) into one struct.

KEYS:
  port             HTTP port of the serve command (default 8080)
  allowed_origins  CORS origins of the serve command
  log_level        debug, info, warn or error (default info)
  log_format       text or json (default text)
  timezone         IANA zone for zone-aware conversions (default Local)

SEE ALSO:
  - cmd/dtconv/root.go: viper initialization
*/
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration of dtconv.
type Config struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`
	LogFormat      string   `mapstructure:"log_format"`
	Timezone       string   `mapstructure:"timezone"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("port", 8080)
	viper.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("timezone", "Local")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}
	return cfg, nil
}

// Location resolves Timezone. An empty name means UTC, "Local" the process
// zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds the slog logger described by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("log format %q: expected text or json", c.LogFormat)
}
