// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate runs the test in an empty directory with every mapped variable unset.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Storage.Path != "./data/shelfmate" {
		t.Errorf("Storage.Path = %q, want ./data/shelfmate", cfg.Storage.Path)
	}
	if cfg.Storage.InMemory {
		t.Error("Storage.InMemory should be false by default")
	}
	if !cfg.Storage.SyncWrites {
		t.Error("Storage.SyncWrites should be true by default")
	}
	if cfg.Storage.MaxConflictRetries != 3 {
		t.Errorf("Storage.MaxConflictRetries = %d, want 3", cfg.Storage.MaxConflictRetries)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Maintenance.GCInterval != 10*time.Minute {
		t.Errorf("Maintenance.GCInterval = %v, want 10m", cfg.Maintenance.GCInterval)
	}
	if cfg.Maintenance.ReconcileInterval != time.Hour {
		t.Errorf("Maintenance.ReconcileInterval = %v, want 1h", cfg.Maintenance.ReconcileInterval)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Seed.DummyData {
		t.Error("Seed.DummyData should be false by default")
	}
	if cfg.Supervisor.FailureBackoff != 15*time.Second {
		t.Errorf("Supervisor.FailureBackoff = %v, want 15s", cfg.Supervisor.FailureBackoff)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"STORAGE_PATH", "storage.path"},
		{"STORAGE_IN_MEMORY", "storage.in_memory"},
		{"STORAGE_SYNC_WRITES", "storage.sync_writes"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"GC_INTERVAL", "maintenance.gc_interval"},
		{"RECONCILE_INTERVAL", "maintenance.reconcile_interval"},
		{"METRICS_ENABLED", "metrics.enabled"},
		{"METRICS_ADDR", "metrics.addr"},
		{"SEED_DUMMY_DATA", "seed.dummy_data"},
		{"SUPERVISOR_SHUTDOWN_TIMEOUT", "supervisor.shutdown_timeout"},

		// Unmapped
		{"HOME", ""},
		{"PATH", ""},
		{"STORAGE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("shelfmate.yaml exists", func(t *testing.T) {
		path := writeConfig(t, dir, "shelfmate.yaml", "seed:\n  dummy_data: true\n")
		defer os.Remove(path)

		if got := findConfigFile(); got != "shelfmate.yaml" {
			t.Errorf("findConfigFile() = %q, want shelfmate.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		writeConfig(t, dir, "shelfmate.yaml", "")
		custom := writeConfig(t, dir, "custom.yaml", "")
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH with missing file falls back", func(t *testing.T) {
		os.Remove(filepath.Join(dir, "shelfmate.yaml"))
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := defaultConfig()
	if cfg.Storage != want.Storage {
		t.Errorf("Storage = %+v, want %+v", cfg.Storage, want.Storage)
	}
	if cfg.Maintenance != want.Maintenance {
		t.Errorf("Maintenance = %+v, want %+v", cfg.Maintenance, want.Maintenance)
	}
}

func TestLoad_EnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_IN_MEMORY", "true")
	t.Setenv("STORAGE_PATH", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GC_INTERVAL", "2m")
	t.Setenv("GC_DISCARD_RATIO", "0.7")
	t.Setenv("METRICS_ADDR", ":9999")
	t.Setenv("SEED_DUMMY_DATA", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Storage.InMemory {
		t.Error("Storage.InMemory = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Maintenance.GCInterval != 2*time.Minute {
		t.Errorf("Maintenance.GCInterval = %v, want 2m", cfg.Maintenance.GCInterval)
	}
	if cfg.Maintenance.GCDiscardRatio != 0.7 {
		t.Errorf("Maintenance.GCDiscardRatio = %v, want 0.7", cfg.Maintenance.GCDiscardRatio)
	}
	if cfg.Metrics.Addr != ":9999" {
		t.Errorf("Metrics.Addr = %q, want :9999", cfg.Metrics.Addr)
	}
	if !cfg.Seed.DummyData {
		t.Error("Seed.DummyData = false, want true")
	}

	// Unset values keep their defaults
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json (default)", cfg.Logging.Format)
	}
	if cfg.Maintenance.ReconcileInterval != time.Hour {
		t.Errorf("Maintenance.ReconcileInterval = %v, want 1h (default)", cfg.Maintenance.ReconcileInterval)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "custom.yaml", `
storage:
  path: "/var/lib/shelfmate"
  sync_writes: false
logging:
  level: "warn"
  format: "console"
maintenance:
  reconcile_interval: "30m"
metrics:
  enabled: false
`)

	cfg, err := LoadWithPath(path)
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}

	if cfg.Storage.Path != "/var/lib/shelfmate" {
		t.Errorf("Storage.Path = %q, want /var/lib/shelfmate", cfg.Storage.Path)
	}
	if cfg.Storage.SyncWrites {
		t.Error("Storage.SyncWrites = true, want false")
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want warn/console", cfg.Logging)
	}
	if cfg.Maintenance.ReconcileInterval != 30*time.Minute {
		t.Errorf("Maintenance.ReconcileInterval = %v, want 30m", cfg.Maintenance.ReconcileInterval)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if !cfg.Storage.Compression {
		t.Error("Storage.Compression should keep its default")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "shelfmate.yaml", `
storage:
  path: "/from/file"
logging:
  level: "warn"
`)
	t.Setenv("STORAGE_PATH", "/from/env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Path != "/from/env" {
		t.Errorf("Storage.Path = %q, want /from/env", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

func TestLoadWithPath_MissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := LoadWithPath("/non/existent/shelfmate.yaml"); err == nil {
		t.Error("LoadWithPath() with a missing explicit file should fail")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "invalid log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "discard ratio out of range",
			env:     map[string]string{"GC_DISCARD_RATIO": "1.5"},
			wantErr: "GC_DISCARD_RATIO",
		},
		{
			name:    "negative reconcile interval",
			env:     map[string]string{"RECONCILE_INTERVAL": "-1m"},
			wantErr: "RECONCILE_INTERVAL",
		},
		{
			name:    "metrics path without slash",
			env:     map[string]string{"METRICS_PATH": "metrics"},
			wantErr: "METRICS_PATH",
		},
		{
			name:    "negative conflict retries",
			env:     map[string]string{"STORAGE_MAX_CONFLICT_RETRIES": "-1"},
			wantErr: "STORAGE_MAX_CONFLICT_RETRIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
