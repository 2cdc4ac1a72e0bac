// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package kvstore is a JSON document store over BadgerDB.
//
// Each key holds one whole collection (the users list, the per-user wishlist
// map, ...). Callers read a collection, change it in memory and write it back.
// Update runs any number of those reads and writes in a single badger
// transaction so related collections never diverge.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/metrics"
)

// Config holds BadgerDB settings.
type Config struct {
	// Path is the directory where BadgerDB stores its files. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in memory. Used by tests and throwaway runs.
	InMemory bool

	// SyncWrites forces fsync after every commit.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool

	// MemTableSize is the size of each memtable in bytes. Zero keeps the badger default.
	MemTableSize int64

	// ValueLogFileSize is the size of each value log file in bytes. Zero keeps the badger default.
	ValueLogFileSize int64

	// MaxConflictRetries is how often Update re-runs after badger.ErrConflict.
	MaxConflictRetries int
}

// DefaultConfig returns settings for a file-backed store at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:               path,
		SyncWrites:         true,
		Compression:        true,
		MemTableSize:       16 << 20,
		ValueLogFileSize:   64 << 20,
		MaxConflictRetries: 3,
	}
}

// Store is the key-value store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	cfg    Config
	closed atomic.Bool
}

// Open opens (or creates) the store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("open key-value store: path is required unless in-memory")
	}
	if cfg.MaxConflictRetries < 0 {
		cfg.MaxConflictRetries = 0
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	if cfg.MemTableSize > 0 {
		opts.MemTableSize = cfg.MemTableSize
	}
	if cfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = cfg.ValueLogFileSize
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Bool("compression", cfg.Compression).
		Msg("key-value store opened")

	return &Store{db: db, cfg: cfg}, nil
}

// Close closes the underlying database. Calling it twice is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("key-value store closed")
	return nil
}

func (s *Store) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// Set serializes value and stores it under key, replacing any previous value.
// On failure the error is logged and returned and the previous value stays in place.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.Set(key, value)
	})
}

// Get decodes the value under key into dst, which must be a non-nil pointer.
// It reports false and leaves dst untouched when the key is absent or the
// stored value cannot be decoded, so dst should hold the caller's default.
// Only storage failures are returned as errors.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	var found bool
	err := s.View(ctx, func(tx *Tx) error {
		var err error
		found, err = tx.Get(key, dst)
		return err
	})
	return found, err
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.Remove(key)
	})
}

// Clear deletes every key in the store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := s.db.DropAll()
	metrics.RecordStoreOp("clear", "*", time.Since(start), err)
	if err != nil {
		logging.Err(err).Msg("failed to clear key-value store")
		return fmt.Errorf("drop all: %w", err)
	}
	logging.Warn().Msg("key-value store cleared")
	return nil
}

// Keys lists every stored key in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.View(ctx, func(tx *Tx) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := tx.txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// Update runs fn in a read-write transaction and commits it when fn returns nil.
// A write conflict with a concurrent transaction re-runs fn from scratch, so fn
// must derive all of its results inside the call.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	start := time.Now()
	for attempt := 0; ; attempt++ {
		tx := newTx(nil)
		err := s.db.Update(func(txn *badger.Txn) error {
			tx.txn = txn
			return fn(tx)
		})
		if errors.Is(err, badger.ErrConflict) && attempt < s.cfg.MaxConflictRetries {
			metrics.RecordTxnConflict()
			logging.Debug().Int("attempt", attempt+1).Msg("transaction conflict, retrying")
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		metrics.RecordStoreOp("update", "*", time.Since(start), err)
		if err == nil {
			tx.recordSizes()
		}
		return err
	}
}

// View runs fn in a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		return fn(newTx(txn))
	})
}
