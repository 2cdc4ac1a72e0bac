// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"

	"github.com/tomtom215/shelfmate/internal/kvstore"
)

// Stats counts the records in each collection.
type Stats struct {
	Users                   int  `json:"users"`
	SignedIn                bool `json:"signedIn"`
	WishlistItems           int  `json:"wishlistItems"`
	Playlists               int  `json:"playlists"`
	PlaylistItems           int  `json:"playlistItems"`
	Likes                   int  `json:"likes"`
	Friendships             int  `json:"friendships"`
	PendingRequests         int  `json:"pendingRequests"`
	Recommendations         int  `json:"recommendations"`
	UnviewedRecommendations int  `json:"unviewedRecommendations"`
	Reviews                 int  `json:"reviews"`
	HistoryEntries          int  `json:"historyEntries"`
	Notifications           int  `json:"notifications"`
}

// Stats reads every collection in one snapshot and counts its records.
// Friendships count each pair once; likes count liked-index entries.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.kv.View(ctx, func(tx *kvstore.Tx) error {
		st = Stats{}
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		st.Users = len(users)

		var current map[string]any
		if st.SignedIn, err = tx.Get(KeyCurrentUser, &current); err != nil {
			return err
		}

		wishlist, err := loadMap[[]struct{}](tx, KeyWishlist)
		if err != nil {
			return err
		}
		st.WishlistItems = countAll(wishlist)

		playlists, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		for _, list := range playlists {
			st.Playlists += len(list)
			for _, p := range list {
				st.PlaylistItems += len(p.Items)
			}
		}

		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}
		st.Likes = countAll(liked)

		g, err := loadGraph(tx)
		if err != nil {
			return err
		}
		st.Friendships = countAll(g.friends) / 2
		for _, r := range g.requests {
			st.PendingRequests += len(r.Sent)
		}

		recs, err := loadRecommendations(tx)
		if err != nil {
			return err
		}
		for _, list := range recs {
			st.Recommendations += len(list)
			for _, r := range list {
				if !r.Viewed {
					st.UnviewedRecommendations++
				}
			}
		}

		reviews, err := loadReviews(tx)
		if err != nil {
			return err
		}
		st.Reviews = countAll(reviews)

		history, err := loadHistory(tx)
		if err != nil {
			return err
		}
		st.HistoryEntries = countAll(history)

		notes, err := loadSlice[struct{}](tx, KeyNotifications)
		if err != nil {
			return err
		}
		st.Notifications = len(notes)
		return nil
	})
	return st, err
}

func countAll[V any](m map[string][]V) int {
	n := 0
	for _, list := range m {
		n += len(list)
	}
	return n
}
