// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/metrics"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/validation"
)

// PlaylistInput is the metadata of a new playlist.
type PlaylistInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"isPublic"`
}

// PlaylistPatch holds the metadata to change. Nil fields are kept.
type PlaylistPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsPublic    *bool   `json:"isPublic"`
}

// ReconcileReport summarizes a ReconcileLikes pass.
type ReconcileReport struct {
	Playlists       int `json:"playlists"`
	CountersFixed   int `json:"countersFixed"`
	DanglingRemoved int `json:"danglingRemoved"`
}

// PlaylistStore manages playlists, partitioned by owner, and the per-user
// liked-playlist index. A playlist's Likes always equals the number of liked
// indexes that name it; both sides change in the same transaction.
type PlaylistStore struct {
	s *Store
}

type playlistMap map[string][]models.Playlist

// locate finds playlistID in any partition.
func (m playlistMap) locate(playlistID string) (owner string, idx int, ok bool) {
	for owner, list := range m {
		for i := range list {
			if list[i].ID == playlistID {
				return owner, i, true
			}
		}
	}
	return "", -1, false
}

// owned returns the playlist for mutation after checking that ownerID owns it.
func (m playlistMap) owned(ownerID, playlistID string) (*models.Playlist, error) {
	owner, i, ok := m.locate(playlistID)
	if !ok {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, ErrNotFound)
	}
	if owner != ownerID {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, ErrNotOwner)
	}
	return &m[owner][i], nil
}

func loadPlaylists(tx *kvstore.Tx) (playlistMap, error) {
	m, err := loadMap[[]models.Playlist](tx, KeyPlaylists)
	return playlistMap(m), err
}

func loadLiked(tx *kvstore.Tx) (map[string][]string, error) {
	return loadMap[[]string](tx, KeyLikedPlaylists)
}

// Create adds a playlist owned by ownerID.
func (ps *PlaylistStore) Create(ctx context.Context, ownerID string, in PlaylistInput) (models.Playlist, error) {
	if err := validation.Check(&in); err != nil {
		return models.Playlist{}, err
	}

	var p models.Playlist
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		if err := requireUsers(tx, ownerID); err != nil {
			return err
		}
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}

		p = models.Playlist{
			ID:          ownerID + "_" + ps.s.newID(),
			UserID:      ownerID,
			Title:       in.Title,
			Description: in.Description,
			IsPublic:    in.IsPublic,
			CreatedAt:   ps.s.timestamp(),
			Items:       []models.ContentRef{},
		}
		all[ownerID] = append(all[ownerID], p)
		return save(tx, KeyPlaylists, all)
	})
	if err != nil {
		return models.Playlist{}, err
	}

	logging.Ctx(ctx).Debug().Str("playlist_id", p.ID).Str("owner", ownerID).Msg("playlist created")
	return p, nil
}

// Update changes the metadata of a playlist owned by ownerID.
func (ps *PlaylistStore) Update(ctx context.Context, ownerID, playlistID string, patch PlaylistPatch) (models.Playlist, error) {
	if err := validation.Check(&patch); err != nil {
		return models.Playlist{}, err
	}
	return ps.mutateOwned(ctx, ownerID, playlistID, func(p *models.Playlist) bool {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.IsPublic != nil {
			p.IsPublic = *patch.IsPublic
		}
		return true
	})
}

// Delete removes a playlist owned by ownerID and drops it from every liked index.
func (ps *PlaylistStore) Delete(ctx context.Context, ownerID, playlistID string) error {
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		if _, err := all.owned(ownerID, playlistID); err != nil {
			return err
		}
		all[ownerID] = slices.DeleteFunc(all[ownerID], func(p models.Playlist) bool {
			return p.ID == playlistID
		})

		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}
		for userID, ids := range liked {
			if slices.Contains(ids, playlistID) {
				liked[userID] = without(ids, playlistID)
			}
		}

		if err := save(tx, KeyPlaylists, all); err != nil {
			return err
		}
		return save(tx, KeyLikedPlaylists, liked)
	})
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().Str("playlist_id", playlistID).Msg("playlist deleted")
	return nil
}

// AddItem appends ref to the playlist. Adding an item already present is a no-op.
func (ps *PlaylistStore) AddItem(ctx context.Context, ownerID, playlistID string, ref models.ContentRef) (models.Playlist, error) {
	if err := validation.Check(&ref); err != nil {
		return models.Playlist{}, err
	}
	return ps.mutateOwned(ctx, ownerID, playlistID, func(p *models.Playlist) bool {
		if p.HasItem(ref.ID, ref.Type) {
			return false
		}
		p.Items = append(p.Items, ref)
		return true
	})
}

// RemoveItem deletes (id, t) from the playlist.
func (ps *PlaylistStore) RemoveItem(ctx context.Context, ownerID, playlistID string, id models.ContentID, t models.ContentType) (models.Playlist, error) {
	return ps.mutateOwned(ctx, ownerID, playlistID, func(p *models.Playlist) bool {
		if !p.HasItem(id, t) {
			return false
		}
		p.Items = slices.DeleteFunc(p.Items, func(item models.ContentRef) bool {
			return item.Matches(id, t)
		})
		return true
	})
}

// mutateOwned applies fn to an owned playlist. fn reports whether it changed
// anything; unchanged playlists are not rewritten and keep their updatedAt.
func (ps *PlaylistStore) mutateOwned(ctx context.Context, ownerID, playlistID string, fn func(*models.Playlist) bool) (models.Playlist, error) {
	var out models.Playlist
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		p, err := all.owned(ownerID, playlistID)
		if err != nil {
			return err
		}
		if fn(p) {
			now := ps.s.timestamp()
			p.UpdatedAt = &now
			if err := save(tx, KeyPlaylists, all); err != nil {
				return err
			}
		}
		p.Items = orEmpty(p.Items)
		out = *p
		return nil
	})
	if err != nil {
		return models.Playlist{}, err
	}
	return out, nil
}

// Get returns a playlist by id from any owner.
func (ps *PlaylistStore) Get(ctx context.Context, playlistID string) (models.Playlist, error) {
	var out models.Playlist
	err := ps.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		owner, i, ok := all.locate(playlistID)
		if !ok {
			return fmt.Errorf("playlist %s: %w", playlistID, ErrNotFound)
		}
		out = all[owner][i]
		return nil
	})
	return out, err
}

// ListByOwner returns the playlists of ownerID in creation order.
func (ps *PlaylistStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	var out []models.Playlist
	err := ps.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		out = all[ownerID]
		return nil
	})
	return orEmpty(out), err
}

// ListAll flattens every owner's playlists, ordered by owner id and then
// creation order. IsPublic is not applied here.
func (ps *PlaylistStore) ListAll(ctx context.Context) ([]models.Playlist, error) {
	out := []models.Playlist{}
	err := ps.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		owners := make([]string, 0, len(all))
		for owner := range all {
			owners = append(owners, owner)
		}
		sort.Strings(owners)
		for _, owner := range owners {
			out = append(out, all[owner]...)
		}
		return nil
	})
	return out, err
}

// Liked returns the ids of the playlists userID has liked.
func (ps *PlaylistStore) Liked(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := ps.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}
		ids = liked[userID]
		return nil
	})
	return orEmpty(ids), err
}

// Like adds playlistID to the liked index of userID and increments the
// playlist's counter. Liking twice is a no-op. Returns the resulting index.
func (ps *PlaylistStore) Like(ctx context.Context, userID, playlistID string) ([]string, error) {
	var ids []string
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		if err := requireUsers(tx, userID); err != nil {
			return err
		}
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		owner, i, ok := all.locate(playlistID)
		if !ok {
			return fmt.Errorf("playlist %s: %w", playlistID, ErrNotFound)
		}
		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}

		ids = orEmpty(liked[userID])
		if slices.Contains(ids, playlistID) {
			return nil
		}
		ids = append(ids, playlistID)
		liked[userID] = ids
		all[owner][i].Likes++

		if err := save(tx, KeyLikedPlaylists, liked); err != nil {
			return err
		}
		return save(tx, KeyPlaylists, all)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Unlike removes playlistID from the liked index of userID and decrements the
// playlist's counter, never below zero. Unliking a playlist that was not
// liked changes nothing. Returns the resulting index.
func (ps *PlaylistStore) Unlike(ctx context.Context, userID, playlistID string) ([]string, error) {
	var ids []string
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}
		ids = orEmpty(liked[userID])
		if !slices.Contains(ids, playlistID) {
			return nil
		}
		ids = without(ids, playlistID)
		liked[userID] = ids
		if err := save(tx, KeyLikedPlaylists, liked); err != nil {
			return err
		}

		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		owner, i, ok := all.locate(playlistID)
		if !ok {
			return nil
		}
		if all[owner][i].Likes > 0 {
			all[owner][i].Likes--
		}
		return save(tx, KeyPlaylists, all)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReconcileLikes recomputes every Likes counter from the liked indexes and
// removes index entries that name deleted playlists or repeat an id.
func (ps *PlaylistStore) ReconcileLikes(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	start := time.Now()
	err := ps.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		report = ReconcileReport{}
		all, err := loadPlaylists(tx)
		if err != nil {
			return err
		}
		liked, err := loadLiked(tx)
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		for _, list := range all {
			for _, p := range list {
				counts[p.ID] = 0
			}
		}
		report.Playlists = len(counts)

		for userID, ids := range liked {
			kept := make([]string, 0, len(ids))
			for _, id := range ids {
				if _, exists := counts[id]; !exists || slices.Contains(kept, id) {
					report.DanglingRemoved++
					continue
				}
				kept = append(kept, id)
				counts[id]++
			}
			liked[userID] = kept
		}

		for owner, list := range all {
			for i := range list {
				if want := counts[list[i].ID]; list[i].Likes != want {
					all[owner][i].Likes = want
					report.CountersFixed++
				}
			}
		}

		if report.CountersFixed == 0 && report.DanglingRemoved == 0 {
			return nil
		}
		if err := save(tx, KeyPlaylists, all); err != nil {
			return err
		}
		return save(tx, KeyLikedPlaylists, liked)
	})
	if err != nil {
		return ReconcileReport{}, err
	}

	metrics.RecordLikeReconcile(report.CountersFixed, report.DanglingRemoved)
	event := logging.Ctx(ctx).Debug()
	if report.CountersFixed > 0 || report.DanglingRemoved > 0 {
		event = logging.Ctx(ctx).Warn()
	}
	event.
		Int("playlists", report.Playlists).
		Int("counters_fixed", report.CountersFixed).
		Int("dangling_removed", report.DanglingRemoved).
		Dur("duration", time.Since(start)).
		Msg("playlist likes reconciled")
	return report, nil
}
