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

type historyRating struct {
	Rating *int `json:"rating" validate:"omitempty,min=1,max=5"`
}

// HistoryStore is the per-user log of watched movies and read books.
type HistoryStore struct {
	s *Store
}

func loadHistory(tx *kvstore.Tx) (map[string][]models.HistoryEntry, error) {
	return loadMap[[]models.HistoryEntry](tx, KeyHistory)
}

// Record marks ref as watched or read by userID. Recording the same item
// again replaces its rating and review and refreshes watchedAt.
func (h *HistoryStore) Record(ctx context.Context, userID string, ref models.ContentRef, rating *int, review string) (models.HistoryEntry, error) {
	if err := validation.Check(&ref); err != nil {
		return models.HistoryEntry{}, err
	}
	if err := validation.Check(&historyRating{Rating: rating}); err != nil {
		return models.HistoryEntry{}, err
	}

	var entry models.HistoryEntry
	err := h.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		if err := requireUsers(tx, userID); err != nil {
			return err
		}
		all, err := loadHistory(tx)
		if err != nil {
			return err
		}
		entry = models.HistoryEntry{
			ContentRef: ref,
			Rating:     rating,
			Review:     review,
			WatchedAt:  h.s.timestamp(),
		}

		entries := all[userID]
		if i := historyIndex(entries, ref.ID, ref.Type); i >= 0 {
			entries[i] = entry
		} else {
			entries = append(entries, entry)
		}
		all[userID] = entries
		return save(tx, KeyHistory, all)
	})
	if err != nil {
		return models.HistoryEntry{}, err
	}
	return entry, nil
}

// List returns the history of userID filtered by t, or all of it when t is empty.
func (h *HistoryStore) List(ctx context.Context, userID string, t models.ContentType) ([]models.HistoryEntry, error) {
	out := []models.HistoryEntry{}
	err := h.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadHistory(tx)
		if err != nil {
			return err
		}
		for _, e := range all[userID] {
			if t == "" || e.Type == t {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

// Has reports whether userID has recorded (id, t).
func (h *HistoryStore) Has(ctx context.Context, userID string, id models.ContentID, t models.ContentType) (bool, error) {
	entries, err := h.List(ctx, userID, t)
	if err != nil {
		return false, err
	}
	return historyIndex(entries, id, t) >= 0, nil
}

func historyIndex(entries []models.HistoryEntry, id models.ContentID, t models.ContentType) int {
	return slices.IndexFunc(entries, func(e models.HistoryEntry) bool {
		return e.Matches(id, t)
	})
}
