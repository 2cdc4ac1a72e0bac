// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"shelfmate.yaml",
	"shelfmate.yml",
	"/etc/shelfmate/config.yaml",
}

// ConfigPathEnvVar names the environment variable holding an explicit config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Path:               "./data/shelfmate",
			InMemory:           false,
			SyncWrites:         true,
			Compression:        true,
			MemTableSize:       16 << 20,
			ValueLogFileSize:   64 << 20,
			MaxConflictRetries: 3,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
		Maintenance: MaintenanceConfig{
			GCInterval:        10 * time.Minute,
			GCDiscardRatio:    0.5,
			ReconcileInterval: time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "127.0.0.1:9464",
			Path:    "/metrics",
		},
		Seed: SeedConfig{
			DummyData: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithPath loads configuration with layered sources:
//  1. Defaults
//  2. Config file: path if non-empty, otherwise the first of $CONFIG_PATH and
//     DefaultConfigPaths that exists
//  3. Environment variables
//
// An explicit path that cannot be read is an error; a missing default file is not.
func LoadWithPath(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// STORAGE_PATH -> storage.path, LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"storage_path":                 "storage.path",
	"storage_in_memory":            "storage.in_memory",
	"storage_sync_writes":          "storage.sync_writes",
	"storage_compression":          "storage.compression",
	"storage_mem_table_size":       "storage.mem_table_size",
	"storage_value_log_file_size":  "storage.value_log_file_size",
	"storage_max_conflict_retries": "storage.max_conflict_retries",

	"log_level":     "logging.level",
	"log_format":    "logging.format",
	"log_caller":    "logging.caller",
	"log_timestamp": "logging.timestamp",

	"gc_interval":        "maintenance.gc_interval",
	"gc_discard_ratio":   "maintenance.gc_discard_ratio",
	"reconcile_interval": "maintenance.reconcile_interval",

	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",
	"metrics_path":    "metrics.path",

	"seed_dummy_data": "seed.dummy_data",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
