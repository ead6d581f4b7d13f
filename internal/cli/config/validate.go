package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// MaxPrecision is the largest number of decimal places accepted for weights.
const MaxPrecision = 12

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}

	valid := false
	for _, o := range validOutputs {
		if c.OutputFormat == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format %q (expected one of: %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}

	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, c.Precision)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
