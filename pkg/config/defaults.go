package config

import "os"

// Default values for configuration.
const (
	DefaultDelimiter       = ";"
	DefaultTimestampLayout = "2006-01-02 15:04:05"
	DefaultStartAction     = "Start"
	DefaultStopAction      = "Stop"
	DefaultHistoryPath     = "worktally.db"
)

// Environment variable names.
const (
	EnvDelimiter       = "WORKTALLY_DELIMITER"
	EnvTimestampLayout = "WORKTALLY_TIMESTAMP_LAYOUT"
	EnvHistoryPath     = "WORKTALLY_HISTORY_PATH"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogFormat: LogFormatConfig{
			Delimiter:       DefaultDelimiter,
			TimestampLayout: DefaultTimestampLayout,
			StartAction:     DefaultStartAction,
			StopAction:      DefaultStopAction,
		},
		History: HistoryConfig{
			Path: DefaultHistoryPath,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if delim := os.Getenv(EnvDelimiter); delim != "" {
		c.LogFormat.Delimiter = delim
	}
	if layout := os.Getenv(EnvTimestampLayout); layout != "" {
		c.LogFormat.TimestampLayout = layout
	}
	if path := os.Getenv(EnvHistoryPath); path != "" {
		c.History.Path = path
	}
}
