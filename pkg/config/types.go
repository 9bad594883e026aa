// Package config provides configuration loading and validation for worktally.
package config

// Config is the root configuration structure loaded from YAML.
// Every field has a default, so the config file is optional.
type Config struct {
	LogFormat LogFormatConfig `yaml:"log_format"`
	History   HistoryConfig   `yaml:"history,omitempty"`
}

// LogFormatConfig describes the delimited session log format.
type LogFormatConfig struct {
	// Delimiter separates the fields of one record.
	Delimiter string `yaml:"delimiter"`

	// TimestampLayout is the Go time layout string for the timestamp field.
	// See https://pkg.go.dev/time#pkg-constants for format.
	TimestampLayout string `yaml:"timestamp_layout"`

	// StartAction is the action value that opens a session.
	StartAction string `yaml:"start_action"`

	// StopAction is the action value that closes a session.
	StopAction string `yaml:"stop_action"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	// Path is the SQLite database file for recorded runs.
	Path string `yaml:"path,omitempty"`
}
