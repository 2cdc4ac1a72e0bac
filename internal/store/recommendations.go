// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/validation"
)

// RecommendationStore manages the content friends send each other, stored
// per recipient.
type RecommendationStore struct {
	s *Store
}

func loadRecommendations(tx *kvstore.Tx) (map[string][]models.Recommendation, error) {
	return loadMap[[]models.Recommendation](tx, KeyRecommendations)
}

// List returns the recommendations received by userID, oldest first.
func (rs *RecommendationStore) List(ctx context.Context, userID string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := rs.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadRecommendations(tx)
		if err != nil {
			return err
		}
		recs = all[userID]
		return nil
	})
	return orEmpty(recs), err
}

// Unviewed counts the recommendations userID has not opened yet.
func (rs *RecommendationStore) Unviewed(ctx context.Context, userID string) (int, error) {
	recs, err := rs.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range recs {
		if !r.Viewed {
			n++
		}
	}
	return n, nil
}

// Send delivers ref from fromID to each recipient and writes a notification
// per delivery. Recipients who already hold the same (id, type) are skipped.
// Every recipient must exist; otherwise nothing is written. Returns the
// number of recommendations delivered.
func (rs *RecommendationStore) Send(ctx context.Context, fromID string, toIDs []string, ref models.ContentRef, message string) (int, error) {
	if err := validation.Check(&ref); err != nil {
		return 0, err
	}
	recipients := make([]string, 0, len(toIDs))
	for _, id := range toIDs {
		if id == fromID {
			return 0, ErrSelfRequest
		}
		recipients = appendUnique(recipients, id)
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	var delivered int
	err := rs.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		delivered = 0
		if err := requireUsers(tx, append([]string{fromID}, recipients...)...); err != nil {
			return err
		}
		all, err := loadRecommendations(tx)
		if err != nil {
			return err
		}
		notes, err := loadSlice[models.Notification](tx, KeyNotifications)
		if err != nil {
			return err
		}

		now := rs.s.timestamp()
		for _, to := range recipients {
			if slices.ContainsFunc(all[to], func(r models.Recommendation) bool {
				return r.Matches(ref.ID, ref.Type)
			}) {
				continue
			}
			all[to] = append(all[to], models.Recommendation{
				ContentRef:    ref,
				From:          fromID,
				RecommendedAt: now,
			})
			notes = append(notes, models.Notification{
				ID:         rs.s.newID(),
				Type:       models.NotificationRecommendation,
				FromUserID: fromID,
				ToUserID:   to,
				Item:       ref,
				ItemType:   ref.Type,
				Message:    message,
				CreatedAt:  now,
			})
			delivered++
		}
		if delivered == 0 {
			return nil
		}

		if err := save(tx, KeyRecommendations, all); err != nil {
			return err
		}
		return save(tx, KeyNotifications, notes)
	})
	if err != nil {
		return 0, err
	}

	logging.Ctx(ctx).Debug().
		Str("from", fromID).
		Str("content_id", string(ref.ID)).
		Int("recipients", len(recipients)).
		Int("delivered", delivered).
		Msg("recommendation sent")
	return delivered, nil
}

// MarkViewed flags the first recommendation of contentID received by userID
// as viewed. A viewed recommendation stays viewed.
func (rs *RecommendationStore) MarkViewed(ctx context.Context, userID string, contentID models.ContentID) error {
	return rs.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadRecommendations(tx)
		if err != nil {
			return err
		}
		recs := all[userID]
		i := slices.IndexFunc(recs, func(r models.Recommendation) bool { return r.ID == contentID })
		if i < 0 {
			return fmt.Errorf("recommendation %s: %w", contentID, ErrNotFound)
		}
		if recs[i].Viewed {
			return nil
		}
		recs[i].Viewed = true
		return save(tx, KeyRecommendations, all)
	})
}

// Remove deletes the recommendation of (id, t) received by userID.
func (rs *RecommendationStore) Remove(ctx context.Context, userID string, id models.ContentID, t models.ContentType) error {
	_, err := rs.RemoveWhere(ctx, userID, func(r models.Recommendation) bool {
		return r.Matches(id, t)
	})
	return err
}

// RemoveWhere deletes every recommendation of userID for which match returns
// true and reports how many were removed. match may be called more than once
// per record and must not have side effects.
func (rs *RecommendationStore) RemoveWhere(ctx context.Context, userID string, match func(models.Recommendation) bool) (int, error) {
	var removed int
	err := rs.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadRecommendations(tx)
		if err != nil {
			return err
		}
		before := len(all[userID])
		kept := slices.DeleteFunc(all[userID], match)
		removed = before - len(kept)
		if removed == 0 {
			return nil
		}
		all[userID] = kept
		return save(tx, KeyRecommendations, all)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// RemoveViewed deletes the recommendations userID has already viewed and keeps
// the unviewed ones.
func (rs *RecommendationStore) RemoveViewed(ctx context.Context, userID string) (int, error) {
	return rs.RemoveWhere(ctx, userID, func(r models.Recommendation) bool {
		return r.Viewed
	})
}
