// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/metrics"
)

// maxPendingRestoreWrites bounds the number of in-flight writes during Restore.
const maxPendingRestoreWrites = 256

// Backup writes a full snapshot of the store to w and returns the snapshot version.
func (s *Store) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	version, err := s.db.Backup(w, 0)
	metrics.RecordStoreOp("backup", "*", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("backup: %w", err)
	}

	logging.Info().Uint64("version", version).Dur("duration", time.Since(start)).Msg("backup written")
	return version, nil
}

// Restore loads a snapshot produced by Backup. Keys present in the snapshot
// overwrite existing ones; other keys are kept. Call Clear first for an exact copy.
func (s *Store) Restore(ctx context.Context, r io.Reader) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	start := time.Now()
	err := s.db.Load(r, maxPendingRestoreWrites)
	metrics.RecordStoreOp("restore", "*", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	logging.Info().Dur("duration", time.Since(start)).Msg("backup restored")
	return nil
}

// RunGC runs value log garbage collection until nothing is left to rewrite.
// In-memory stores have no value log and return nil.
func (s *Store) RunGC(ctx context.Context, ratio float64) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if s.cfg.InMemory {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.RecordGCRun(time.Since(start))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}
