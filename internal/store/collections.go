// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"fmt"
	"slices"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/models"
)

// loadSlice reads a sequence collection. A missing or corrupt value is empty.
func loadSlice[T any](tx *kvstore.Tx, key string) ([]T, error) {
	var v []T
	if _, err := tx.Get(key, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// loadMap reads a partitioned collection. The result is never nil.
func loadMap[V any](tx *kvstore.Tx, key string) (map[string]V, error) {
	var m map[string]V
	if _, err := tx.Get(key, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]V)
	}
	return m, nil
}

// save writes a collection back, naming it in the error.
func save(tx *kvstore.Tx, key string, value any) error {
	if err := tx.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func loadUsers(tx *kvstore.Tx) ([]models.User, error) {
	return loadSlice[models.User](tx, KeyUsers)
}

func userIndex(users []models.User, id string) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
}

// requireUsers returns ErrNotFound naming the first id that is not a known user.
func requireUsers(tx *kvstore.Tx, ids ...string) error {
	users, err := loadUsers(tx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if userIndex(users, id) < 0 {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
	}
	return nil
}

// appendUnique appends s unless it is already present.
func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

// without returns list with every occurrence of s removed. It never returns nil.
func without(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// orEmpty keeps empty sequences encoded as [] rather than null.
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
