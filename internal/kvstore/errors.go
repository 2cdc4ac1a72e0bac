// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package kvstore

import "errors"

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("key-value store is closed")

	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("key cannot be empty")

	// ErrSerialization wraps failures to encode a value. The stored value is unchanged.
	ErrSerialization = errors.New("serialize value")
)
