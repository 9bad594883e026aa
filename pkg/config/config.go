package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
// An empty path returns the defaults (with environment overrides applied).
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if err := validateLogFormat(&cfg.LogFormat); err != nil {
		return fmt.Errorf("log_format: %w", err)
	}
	return nil
}

func validateLogFormat(lf *LogFormatConfig) error {
	if lf.Delimiter == "" {
		return errors.New("delimiter is required")
	}
	if strings.Contains(lf.Delimiter, `"`) {
		return errors.New("delimiter must not contain a quote character")
	}

	if lf.TimestampLayout == "" {
		return errors.New("timestamp_layout is required")
	}

	if lf.StartAction == "" {
		return errors.New("start_action is required")
	}
	if lf.StopAction == "" {
		return errors.New("stop_action is required")
	}
	if lf.StartAction == lf.StopAction {
		return errors.New("start_action and stop_action must differ")
	}

	return nil
}
