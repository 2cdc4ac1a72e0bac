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
)

// Accounts owns operations that span every collection a user appears in.
type Accounts struct {
	s *Store
}

// Delete removes a user and every record that references them in a single
// transaction: their wishlist, playlists, likes, friendships, friend
// requests, received recommendations, history, notifications, reviews and
// the session when they are signed in. Recommendations they sent to others
// are kept and show a dangling sender.
func (a *Accounts) Delete(ctx context.Context, userID string) error {
	err := a.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		i := userIndex(users, userID)
		if i < 0 {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		if err := save(tx, KeyUsers, slices.Delete(users, i, i+1)); err != nil {
			return err
		}

		steps := []func(*kvstore.Tx, string) error{
			deleteWishlist,
			deletePlaylistsAndLikes,
			deleteSocial,
			deleteRecommendations,
			deleteHistory,
			deleteNotifications,
			deleteReviews,
			deleteSession,
		}
		for _, step := range steps {
			if err := step(tx, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func deleteWishlist(tx *kvstore.Tx, userID string) error {
	all, err := loadMap[[]models.WishlistItem](tx, KeyWishlist)
	if err != nil {
		return err
	}
	if _, ok := all[userID]; !ok {
		return nil
	}
	delete(all, userID)
	return save(tx, KeyWishlist, all)
}

// deletePlaylistsAndLikes removes the user's playlists from every liked index
// and takes the user's own likes off the counters of the remaining playlists.
func deletePlaylistsAndLikes(tx *kvstore.Tx, userID string) error {
	all, err := loadPlaylists(tx)
	if err != nil {
		return err
	}
	liked, err := loadLiked(tx)
	if err != nil {
		return err
	}

	owned := make(map[string]bool)
	for _, p := range all[userID] {
		owned[p.ID] = true
	}
	delete(all, userID)

	for _, id := range liked[userID] {
		if owner, i, ok := all.locate(id); ok && all[owner][i].Likes > 0 {
			all[owner][i].Likes--
		}
	}
	delete(liked, userID)

	if len(owned) > 0 {
		for other, ids := range liked {
			liked[other] = slices.DeleteFunc(ids, func(id string) bool { return owned[id] })
		}
	}

	if err := save(tx, KeyPlaylists, all); err != nil {
		return err
	}
	return save(tx, KeyLikedPlaylists, liked)
}

func deleteSocial(tx *kvstore.Tx, userID string) error {
	g, err := loadGraph(tx)
	if err != nil {
		return err
	}

	delete(g.friends, userID)
	for other, ids := range g.friends {
		if slices.Contains(ids, userID) {
			g.friends[other] = without(ids, userID)
		}
	}

	delete(g.requests, userID)
	for other := range g.requests {
		g.dropRequests(other, userID)
	}
	return g.save(tx)
}

func deleteRecommendations(tx *kvstore.Tx, userID string) error {
	all, err := loadRecommendations(tx)
	if err != nil {
		return err
	}
	if _, ok := all[userID]; !ok {
		return nil
	}
	delete(all, userID)
	return save(tx, KeyRecommendations, all)
}

func deleteHistory(tx *kvstore.Tx, userID string) error {
	all, err := loadHistory(tx)
	if err != nil {
		return err
	}
	if _, ok := all[userID]; !ok {
		return nil
	}
	delete(all, userID)
	return save(tx, KeyHistory, all)
}

func deleteNotifications(tx *kvstore.Tx, userID string) error {
	notes, err := loadSlice[models.Notification](tx, KeyNotifications)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(notes, func(n models.Notification) bool {
		return n.ToUserID == userID || n.FromUserID == userID
	})
	return save(tx, KeyNotifications, orEmpty(kept))
}

func deleteReviews(tx *kvstore.Tx, userID string) error {
	all, err := loadReviews(tx)
	if err != nil {
		return err
	}
	for key, reviews := range all {
		kept := slices.DeleteFunc(reviews, func(r models.Review) bool { return r.UserID == userID })
		if len(kept) == 0 {
			delete(all, key)
		} else {
			all[key] = kept
		}
	}
	return save(tx, KeyReviews, all)
}

func deleteSession(tx *kvstore.Tx, userID string) error {
	var current models.User
	found, err := tx.Get(KeyCurrentUser, &current)
	if err != nil || !found || current.ID != userID {
		return err
	}
	return tx.Remove(KeyCurrentUser)
}
