// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package kvstore

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/metrics"
)

// Tx is a transaction handle passed to Update and View callbacks.
// It must not be used after the callback returns.
type Tx struct {
	txn   *badger.Txn
	sizes map[string]int
}

func newTx(txn *badger.Txn) *Tx {
	return &Tx{txn: txn, sizes: make(map[string]int)}
}

// Get decodes the value under key into dst with the same semantics as Store.Get.
func (tx *Tx) Get(key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, fmt.Errorf("get %s: destination must be a non-nil pointer, got %T", key, dst)
	}

	start := time.Now()
	item, err := tx.txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		metrics.RecordStoreOp("get", key, time.Since(start), nil)
		return false, nil
	}
	if err != nil {
		err = fmt.Errorf("get %s: %w", key, err)
		metrics.RecordStoreOp("get", key, time.Since(start), err)
		return false, err
	}

	// Decode into a fresh value so a half-decoded document never leaks into dst.
	fresh := reflect.New(rv.Elem().Type())
	var decodeErr error
	err = item.Value(func(val []byte) error {
		decodeErr = json.Unmarshal(val, fresh.Interface())
		return nil
	})
	metrics.RecordStoreOp("get", key, time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if decodeErr != nil {
		metrics.RecordCorruptValue(key)
		logging.Warn().Err(decodeErr).Str("key", key).Msg("stored value is corrupt, using default")
		return false, nil
	}

	rv.Elem().Set(fresh.Elem())
	return true, nil
}

// Set serializes value and stages it under key.
func (tx *Tx) Set(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("%w %s: %v", ErrSerialization, key, err)
		metrics.RecordStoreOp("set", key, time.Since(start), err)
		logging.Err(err).Str("key", key).Msg("failed to serialize collection")
		return err
	}

	if err := tx.txn.Set([]byte(key), data); err != nil {
		err = fmt.Errorf("set %s: %w", key, err)
		metrics.RecordStoreOp("set", key, time.Since(start), err)
		logging.Err(err).Str("key", key).Int("bytes", len(data)).Msg("failed to write collection")
		return err
	}

	metrics.RecordStoreOp("set", key, time.Since(start), nil)
	tx.sizes[key] = len(data)
	return nil
}

// Remove stages the deletion of key.
func (tx *Tx) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	start := time.Now()
	err := tx.txn.Delete([]byte(key))
	if err != nil {
		err = fmt.Errorf("delete %s: %w", key, err)
		logging.Err(err).Str("key", key).Msg("failed to remove key")
	}
	metrics.RecordStoreOp("remove", key, time.Since(start), err)
	if err == nil {
		tx.sizes[key] = 0
	}
	return err
}

// recordSizes publishes collection sizes once the transaction committed.
func (tx *Tx) recordSizes() {
	for key, size := range tx.sizes {
		metrics.RecordCollectionSize(key, size)
	}
}
