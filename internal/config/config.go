// Package config provides configuration for pgn-report.
package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/pgn-report-go/internal/errors"
)

// Default values used by NewConfig.
const (
	DefaultMaxLineLength = 80
	DefaultWorkers       = 4
	DefaultLogLevel      = "info"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string
}

// Validate checks that the level names a zap level.
func (c *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("%w: log level %q", errors.ErrInvalidConfig, c.Level)
	}
	return nil
}

// Config holds all program configuration.
type Config struct {
	Output OutputConfig
	Log    LogConfig

	// Workers is the number of inputs parsed concurrently.
	Workers int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Output:  *NewOutputConfig(),
		Log:     LogConfig{Level: DefaultLogLevel},
		Workers: DefaultWorkers,
	}
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", errors.ErrInvalidConfig, c.Workers)
	}
	return nil
}
