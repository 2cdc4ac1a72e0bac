// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateMaintenance(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateSupervisor()
}

func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	if c.Storage.MemTableSize < 0 || c.Storage.ValueLogFileSize < 0 {
		return fmt.Errorf("storage sizes must not be negative")
	}
	if c.Storage.MaxConflictRetries < 0 {
		return fmt.Errorf("STORAGE_MAX_CONFLICT_RETRIES must not be negative, got %d", c.Storage.MaxConflictRetries)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateMaintenance() error {
	m := c.Maintenance
	if m.GCInterval < 0 {
		return fmt.Errorf("GC_INTERVAL must not be negative, got %v", m.GCInterval)
	}
	if m.GCInterval > 0 && (m.GCDiscardRatio <= 0 || m.GCDiscardRatio >= 1) {
		return fmt.Errorf("GC_DISCARD_RATIO must be between 0 and 1 exclusive, got %v", m.GCDiscardRatio)
	}
	if m.ReconcileInterval < 0 {
		return fmt.Errorf("RECONCILE_INTERVAL must not be negative, got %v", m.ReconcileInterval)
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("METRICS_ADDR is required when METRICS_ENABLED=true")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with /, got %q", c.Metrics.Path)
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold < 0 || s.FailureDecay < 0 {
		return fmt.Errorf("supervisor failure threshold and decay must not be negative")
	}
	if s.FailureBackoff < 0 || s.ShutdownTimeout < 0 {
		return fmt.Errorf("supervisor durations must not be negative")
	}
	return nil
}
