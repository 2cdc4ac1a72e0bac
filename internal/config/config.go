// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"time"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Categories:
//   - Storage: BadgerDB location and tuning
//   - Logging: zerolog level and format
//   - Maintenance: background value log GC and like counter reconciliation
//   - Metrics: Prometheus endpoint served by the run command
//   - Seed: demo data on startup
//   - Supervisor: suture restart policy
type Config struct {
	Storage     StorageConfig     `koanf:"storage"`
	Logging     LoggingConfig     `koanf:"logging"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Seed        SeedConfig        `koanf:"seed"`
	Supervisor  SupervisorConfig  `koanf:"supervisor"`
}

// StorageConfig holds the key-value store settings.
type StorageConfig struct {
	// Path is the BadgerDB directory. Required unless InMemory is set.
	Path string `koanf:"path"`

	// InMemory discards all data on exit.
	InMemory bool `koanf:"in_memory"`

	SyncWrites  bool `koanf:"sync_writes"`
	Compression bool `koanf:"compression"`

	// MemTableSize and ValueLogFileSize are in bytes. Zero keeps the badger default.
	MemTableSize     int64 `koanf:"mem_table_size"`
	ValueLogFileSize int64 `koanf:"value_log_file_size"`

	// MaxConflictRetries is how often a read-modify-write transaction is
	// re-run when it loses a conflict with a concurrent writer.
	MaxConflictRetries int `koanf:"max_conflict_retries"`
}

// ToKVConfig converts the section to kvstore settings.
func (c StorageConfig) ToKVConfig() kvstore.Config {
	return kvstore.Config{
		Path:               c.Path,
		InMemory:           c.InMemory,
		SyncWrites:         c.SyncWrites,
		Compression:        c.Compression,
		MemTableSize:       c.MemTableSize,
		ValueLogFileSize:   c.ValueLogFileSize,
		MaxConflictRetries: c.MaxConflictRetries,
	}
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`

	Timestamp bool `koanf:"timestamp"`
}

// ToLoggingConfig converts the section to logging settings. Output stays on stderr.
func (c LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Level
	out.Format = c.Format
	out.Caller = c.Caller
	out.Timestamp = c.Timestamp
	return out
}

// MaintenanceConfig controls the background services started by run.
type MaintenanceConfig struct {
	// GCInterval is the period between value log GC passes. Zero disables GC.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCDiscardRatio is passed to badger's RunValueLogGC. Must be in (0, 1).
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`

	// ReconcileInterval is the period between like counter repairs. Zero disables it.
	ReconcileInterval time.Duration `koanf:"reconcile_interval"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	Path    string `koanf:"path"`
}

// SeedConfig controls demo data.
type SeedConfig struct {
	// DummyData seeds demo users and playlists when run starts.
	DummyData bool `koanf:"dummy_data"`
}

// SupervisorConfig mirrors suture's restart policy.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWithPath("")
}
