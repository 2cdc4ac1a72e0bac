// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"slices"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/validation"
)

// WishlistStore manages the per-user wishlists. An item appears at most once
// per (id, type).
type WishlistStore struct {
	s *Store
}

// List returns the wishlist of userID in insertion order.
func (w *WishlistStore) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := w.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadMap[[]models.WishlistItem](tx, KeyWishlist)
		if err != nil {
			return err
		}
		items = all[userID]
		return nil
	})
	return orEmpty(items), err
}

// Add appends ref to the wishlist unless it is already there and returns the
// resulting wishlist. ErrNotFound if userID is not a registered user.
func (w *WishlistStore) Add(ctx context.Context, userID string, ref models.ContentRef) ([]models.WishlistItem, error) {
	if err := validation.Check(&ref); err != nil {
		return nil, err
	}
	return w.mutate(ctx, userID, func(items []models.WishlistItem) []models.WishlistItem {
		if wishlistIndex(items, ref.ID, ref.Type) >= 0 {
			return items
		}
		return append(items, models.WishlistItem{ContentRef: ref, AddedAt: w.s.timestamp()})
	})
}

// Remove deletes (id, t) from the wishlist and returns the resulting wishlist.
// Removing an absent item is a no-op.
func (w *WishlistStore) Remove(ctx context.Context, userID string, id models.ContentID, t models.ContentType) ([]models.WishlistItem, error) {
	return w.mutate(ctx, userID, func(items []models.WishlistItem) []models.WishlistItem {
		return slices.DeleteFunc(items, func(item models.WishlistItem) bool {
			return item.Matches(id, t)
		})
	})
}

// Contains reports whether (id, t) is on the wishlist.
func (w *WishlistStore) Contains(ctx context.Context, userID string, id models.ContentID, t models.ContentType) (bool, error) {
	items, err := w.List(ctx, userID)
	if err != nil {
		return false, err
	}
	return wishlistIndex(items, id, t) >= 0, nil
}

func (w *WishlistStore) mutate(ctx context.Context, userID string, fn func([]models.WishlistItem) []models.WishlistItem) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := w.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		if err := requireUsers(tx, userID); err != nil {
			return err
		}
		all, err := loadMap[[]models.WishlistItem](tx, KeyWishlist)
		if err != nil {
			return err
		}
		items = orEmpty(fn(all[userID]))
		all[userID] = items
		return save(tx, KeyWishlist, all)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func wishlistIndex(items []models.WishlistItem, id models.ContentID, t models.ContentType) int {
	return slices.IndexFunc(items, func(item models.WishlistItem) bool {
		return item.Matches(id, t)
	})
}
