// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package seed fills a store with demo users, playlists, friendships, likes,
// wishlists and recommendations and removes them again. Demo users are recognized by their
// user0..user9@gmail.com emails.
package seed

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/store"
)

// DummyPassword is the password of every demo user.
const DummyPassword = "password123"

// DummyUsers is the number of demo users.
const DummyUsers = 10

// DummyEmail returns the email of demo user i.
func DummyEmail(i int) string {
	return fmt.Sprintf("user%d@gmail.com", i)
}

// IsDummyEmail reports whether email belongs to a demo user.
func IsDummyEmail(email string) bool {
	for i := 0; i < DummyUsers; i++ {
		if email == DummyEmail(i) {
			return true
		}
	}
	return false
}

// Result counts what Seed created.
type Result struct {
	Removed      int `json:"removed"`
	Users        int `json:"users"`
	Playlists    int `json:"playlists"`
	Items        int `json:"items"`
	SkippedItems int `json:"skippedItems"`
	Friendships  int `json:"friendships"`
	Requests     int `json:"requests"`
	Likes        int `json:"likes"`

	WishlistItems         int `json:"wishlistItems"`
	Recommendations       int `json:"recommendations"`
	ViewedRecommendations int `json:"viewedRecommendations"`
}

// recommendationMessages are attached to seeded recommendations in turn.
var recommendationMessages = []string{
	"정말 재미있어요! 꼭 봐보세요.",
	"이 작품은 정말 대박입니다.",
	"개인적으로 추천하고 싶은 작품이에요.",
	"시간 가는 줄 모르고 봤어요.",
	"다시 봐도 좋을 것 같아요.",
}

// Seed replaces any existing demo data with a fresh set: ten users, playlists
// built from the templates and rotated across the users, a ring of
// friendships, pending requests across the ring, likes, 3 to 8 wishlist items
// per user and 2 to 5 recommendations from each user to the next friend in the
// ring, about 40% of them viewed. Likes go through the playlist store so
// counters match the liked indexes, and recommendations go through Send so
// each one gets its notification. Template items the catalogs cannot resolve
// are skipped.
func Seed(ctx context.Context, st *store.Store, catalogs catalog.Set) (Result, error) {
	var res Result
	log := logging.Ctx(ctx)

	removed, err := Clear(ctx, st)
	if err != nil {
		return res, fmt.Errorf("clear previous demo data: %w", err)
	}
	res.Removed = removed

	users := make([]models.User, 0, DummyUsers)
	for i := 0; i < DummyUsers; i++ {
		name := dummyNames[i%len(dummyNames)]
		u, err := st.Users.Create(ctx, store.NewUser{
			Email:    DummyEmail(i),
			Password: DummyPassword,
			Name:     name,
			Bio:      fmt.Sprintf("안녕하세요, %s입니다. 영화와 책을 좋아합니다!", name),
		})
		if err != nil {
			return res, fmt.Errorf("create demo user %d: %w", i, err)
		}
		users = append(users, u)
	}
	res.Users = len(users)

	var playlists []models.Playlist
	templates := slices.Concat(movieTemplates, bookTemplates, mixedTemplates)
	for i, tpl := range templates {
		owner := users[i%len(users)]
		p, added, skipped, err := buildPlaylist(ctx, st, catalogs, owner.ID, tpl)
		if err != nil {
			return res, fmt.Errorf("playlist %q: %w", tpl.Title, err)
		}
		playlists = append(playlists, p)
		res.Items += added
		res.SkippedItems += skipped
	}
	res.Playlists = len(playlists)

	for i := range users {
		next := users[(i+1)%len(users)]
		if err := st.Social.AddFriend(ctx, users[i].ID, next.ID); err != nil && !errors.Is(err, store.ErrAlreadyFriends) {
			return res, fmt.Errorf("befriend %s and %s: %w", users[i].Email, next.Email, err)
		}
		res.Friendships++
	}
	for i := 0; i < len(users)/2; i++ {
		from, to := users[i], users[i+len(users)/2]
		if err := st.Social.SendRequest(ctx, from.ID, to.ID); err != nil {
			return res, fmt.Errorf("request %s -> %s: %w", from.Email, to.Email, err)
		}
		res.Requests++
	}

	for ui, u := range users {
		for pi, p := range playlists {
			if p.UserID == u.ID || (pi+ui)%3 != 0 {
				continue
			}
			if _, err := st.Playlists.Like(ctx, u.ID, p.ID); err != nil {
				return res, fmt.Errorf("like %s by %s: %w", p.ID, u.Email, err)
			}
			res.Likes++
		}
	}

	pool, err := contentPool(ctx, catalogs)
	if err != nil {
		return res, err
	}
	if len(pool) == 0 {
		return res, errors.New("no template item resolves in the catalogs")
	}

	for i, u := range users {
		var wishlist []models.WishlistItem
		for k := 0; k < 3+i%6; k++ {
			ref := pool[(i*3+k)%len(pool)]
			if wishlist, err = st.Wishlist.Add(ctx, u.ID, ref); err != nil {
				return res, fmt.Errorf("wishlist of %s: %w", u.Email, err)
			}
		}
		res.WishlistItems += len(wishlist)
	}

	for i, from := range users {
		to := users[(i+1)%len(users)]
		for k := 0; k < 2+i%4; k++ {
			ref := pool[(i*2+k+len(pool)/2)%len(pool)]
			msg := recommendationMessages[(i+k)%len(recommendationMessages)]
			n, err := st.Recommendations.Send(ctx, from.ID, []string{to.ID}, ref, msg)
			if err != nil {
				return res, fmt.Errorf("recommend %s to %s: %w", ref.ID, to.Email, err)
			}
			res.Recommendations += n
			if n == 0 || (i+k)%5 >= 2 {
				continue
			}
			if err := st.Recommendations.MarkViewed(ctx, to.ID, ref.ID); err != nil {
				return res, fmt.Errorf("mark %s viewed by %s: %w", ref.ID, to.Email, err)
			}
			res.ViewedRecommendations++
		}
	}

	log.Info().
		Int("users", res.Users).
		Int("playlists", res.Playlists).
		Int("items", res.Items).
		Int("skipped_items", res.SkippedItems).
		Int("likes", res.Likes).
		Int("wishlist_items", res.WishlistItems).
		Int("recommendations", res.Recommendations).
		Msg("demo data seeded")
	return res, nil
}

// contentPool resolves every distinct template item, in template order.
func contentPool(ctx context.Context, catalogs catalog.Set) ([]models.ContentRef, error) {
	var pool []models.ContentRef
	seen := make(map[models.ContentKey]bool)
	for _, tpl := range slices.Concat(movieTemplates, bookTemplates, mixedTemplates) {
		for _, it := range tpl.Items {
			ref, err := resolve(ctx, catalogs, it)
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if seen[ref.Key()] {
				continue
			}
			seen[ref.Key()] = true
			pool = append(pool, ref)
		}
	}
	return pool, nil
}

func buildPlaylist(ctx context.Context, st *store.Store, catalogs catalog.Set, ownerID string, tpl template) (models.Playlist, int, int, error) {
	p, err := st.Playlists.Create(ctx, ownerID, store.PlaylistInput{
		Title:       tpl.Title,
		Description: tpl.Description,
		IsPublic:    true,
	})
	if err != nil {
		return models.Playlist{}, 0, 0, err
	}

	added, skipped := 0, 0
	for _, it := range tpl.Items {
		ref, err := resolve(ctx, catalogs, it)
		if errors.Is(err, catalog.ErrNotFound) {
			logging.Ctx(ctx).Debug().Str("playlist", tpl.Title).Str("id", string(it.ID)).Str("query", it.Query).Msg("seed item not in catalog")
			skipped++
			continue
		}
		if err != nil {
			return models.Playlist{}, 0, 0, err
		}
		before := len(p.Items)
		if p, err = st.Playlists.AddItem(ctx, ownerID, p.ID, ref); err != nil {
			return models.Playlist{}, 0, 0, err
		}
		added += len(p.Items) - before
	}
	return p, added, skipped, nil
}

func resolve(ctx context.Context, catalogs catalog.Set, it item) (models.ContentRef, error) {
	if it.Query != "" {
		return catalogs.First(ctx, it.Type, it.Query)
	}
	return catalogs.Lookup(ctx, it.ID, it.Type)
}

// Clear deletes every demo user through the account cascade and returns how
// many were removed. Other users keep their data, minus any links to demo users.
func Clear(ctx context.Context, st *store.Store) (int, error) {
	users, err := st.Users.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, u := range users {
		if !IsDummyEmail(u.Email) {
			continue
		}
		if err := st.Accounts.Delete(ctx, u.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return removed, fmt.Errorf("delete demo user %s: %w", u.Email, err)
		}
		removed++
	}

	if removed > 0 {
		logging.Ctx(ctx).Info().Int("users", removed).Msg("demo data cleared")
	}
	return removed, nil
}
