// Package config provides configuration management for gocache with Viper integration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"lrucache/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. GOCACHE_CAPACITY.
const EnvPrefix = "GOCACHE"

// Config represents the complete configuration for gocache.
type Config struct {
	// Capacity is the maximum number of cache entries. 0 means the cache holds nothing.
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
	// File is the command script to execute; empty means stdin.
	File    string        `mapstructure:"file" yaml:"file"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Capacity: 128,
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// NewViper returns a viper instance with defaults and environment support configured.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("capacity", defaults.Capacity)
	v.SetDefault("file", defaults.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	return v
}

// Load reads configFile (if non-empty) or an optional gocache.{yaml,json,toml}
// in the working directory, then decodes and validates the result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("gocache")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the host program cannot run with.
func Validate(cfg *Config) error {
	var validationErrors []string

	if cfg.Capacity < 0 {
		validationErrors = append(validationErrors, "capacity must be non-negative")
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		validationErrors = append(validationErrors, "logging.level must be one of trace, debug, info, warn, error")
	}

	switch cfg.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// LoggerConfig converts the logging section into a logging.Config.
// The level must already have passed Validate.
func (c *Config) LoggerConfig() logging.Config {
	out := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		out.Level = level
	}
	out.Format = c.Logging.Format
	return out
}
