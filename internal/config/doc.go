// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package config loads and validates Shelfmate configuration.

# Configuration Sources

Settings are layered with Koanf v2, later layers winning:
 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: --config, $CONFIG_PATH, ./shelfmate.yaml or
    /etc/shelfmate/config.yaml
 3. Environment variables listed in envMappings

Unknown environment variables are ignored.

# Environment Variables

Storage (StorageConfig):
  - STORAGE_PATH: BadgerDB directory (default: ./data/shelfmate)
  - STORAGE_IN_MEMORY: keep everything in memory (default: false)
  - STORAGE_SYNC_WRITES: fsync every commit (default: true)
  - STORAGE_COMPRESSION: Snappy block compression (default: true)
  - STORAGE_MAX_CONFLICT_RETRIES: transaction retries on conflict (default: 3)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)

Maintenance (MaintenanceConfig):
  - GC_INTERVAL: value log GC period, 0 disables (default: 10m)
  - GC_DISCARD_RATIO: badger discard ratio (default: 0.5)
  - RECONCILE_INTERVAL: like counter repair period, 0 disables (default: 1h)

Metrics (MetricsConfig):
  - METRICS_ENABLED: serve Prometheus metrics during run (default: true)
  - METRICS_ADDR: listen address (default: 127.0.0.1:9464)
  - METRICS_PATH: HTTP path (default: /metrics)

Seed (SeedConfig):
  - SEED_DUMMY_DATA: seed demo users and playlists when run starts (default: false)

Supervisor (SupervisorConfig):
  - SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY,
    SUPERVISOR_FAILURE_BACKOFF, SUPERVISOR_SHUTDOWN_TIMEOUT

# Usage

	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
	    return err
	}
	logging.Init(cfg.Logging.ToLoggingConfig())
	kv, err := kvstore.Open(cfg.Storage.ToKVConfig())
*/
package config
