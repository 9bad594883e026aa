package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogFormat.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want ;", cfg.LogFormat.Delimiter)
	}
	if cfg.LogFormat.TimestampLayout != "2006-01-02 15:04:05" {
		t.Errorf("TimestampLayout = %q", cfg.LogFormat.TimestampLayout)
	}
	if cfg.LogFormat.StartAction != "Start" || cfg.LogFormat.StopAction != "Stop" {
		t.Errorf("Actions = %q/%q, want Start/Stop", cfg.LogFormat.StartAction, cfg.LogFormat.StopAction)
	}
	if cfg.History.Path != DefaultHistoryPath {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, DefaultHistoryPath)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worktally.yaml")
	content := `log_format:
  delimiter: ","
  timestamp_layout: "2006-01-02T15:04:05"
  start_action: Login
  stop_action: Logout

history:
  path: /tmp/runs.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogFormat.Delimiter != "," {
		t.Errorf("Delimiter = %q, want ,", cfg.LogFormat.Delimiter)
	}
	if cfg.LogFormat.StartAction != "Login" || cfg.LogFormat.StopAction != "Logout" {
		t.Errorf("Actions = %q/%q", cfg.LogFormat.StartAction, cfg.LogFormat.StopAction)
	}
	if cfg.History.Path != "/tmp/runs.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worktally.yaml")
	content := `log_format:
  delimiter: "|"
  timestamp_layout: "2006-01-02 15:04:05"
  start_action: Start
  stop_action: Stop
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogFormat.Delimiter != "|" {
		t.Errorf("Delimiter = %q, want |", cfg.LogFormat.Delimiter)
	}
	if cfg.History.Path != DefaultHistoryPath {
		t.Errorf("History.Path = %q, want default kept", cfg.History.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDelimiter, "|")
	t.Setenv(EnvTimestampLayout, "2006-01-02")
	t.Setenv(EnvHistoryPath, "/tmp/env.db")

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogFormat.Delimiter != "|" {
		t.Errorf("Delimiter = %q, want env override", cfg.LogFormat.Delimiter)
	}
	if cfg.LogFormat.TimestampLayout != "2006-01-02" {
		t.Errorf("TimestampLayout = %q, want env override", cfg.LogFormat.TimestampLayout)
	}
	if cfg.History.Path != "/tmp/env.db" {
		t.Errorf("History.Path = %q, want env override", cfg.History.Path)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty delimiter",
			mutate:  func(c *Config) { c.LogFormat.Delimiter = "" },
			wantErr: "delimiter is required",
		},
		{
			name:    "quote in delimiter",
			mutate:  func(c *Config) { c.LogFormat.Delimiter = `"` },
			wantErr: "quote",
		},
		{
			name:    "empty layout",
			mutate:  func(c *Config) { c.LogFormat.TimestampLayout = "" },
			wantErr: "timestamp_layout is required",
		},
		{
			name:    "empty start action",
			mutate:  func(c *Config) { c.LogFormat.StartAction = "" },
			wantErr: "start_action is required",
		},
		{
			name:    "empty stop action",
			mutate:  func(c *Config) { c.LogFormat.StopAction = "" },
			wantErr: "stop_action is required",
		},
		{
			name: "identical actions",
			mutate: func(c *Config) {
				c.LogFormat.StartAction = "Toggle"
				c.LogFormat.StopAction = "Toggle"
			},
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
