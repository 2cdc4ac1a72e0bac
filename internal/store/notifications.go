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
	"github.com/tomtom215/shelfmate/internal/models"
)

// NotificationStore reads and acknowledges the notifications written by
// RecommendationStore.Send.
type NotificationStore struct {
	s *Store
}

// List returns the notifications addressed to userID, oldest first.
func (ns *NotificationStore) List(ctx context.Context, userID string) ([]models.Notification, error) {
	out := []models.Notification{}
	err := ns.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		notes, err := loadSlice[models.Notification](tx, KeyNotifications)
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.ToUserID == userID {
				out = append(out, n)
			}
		}
		return nil
	})
	return out, err
}

// MarkRead flags a notification as read.
func (ns *NotificationStore) MarkRead(ctx context.Context, notificationID string) error {
	return ns.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		notes, err := loadSlice[models.Notification](tx, KeyNotifications)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(notes, func(n models.Notification) bool { return n.ID == notificationID })
		if i < 0 {
			return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
		}
		if notes[i].Read {
			return nil
		}
		notes[i].Read = true
		return save(tx, KeyNotifications, notes)
	})
}

// UnreadCount counts the unread notifications addressed to userID.
func (ns *NotificationStore) UnreadCount(ctx context.Context, userID string) (int, error) {
	notes, err := ns.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, note := range notes {
		if !note.Read {
			n++
		}
	}
	return n, nil
}
