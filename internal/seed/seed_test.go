// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package seed

import (
	"context"
	"testing"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	kv, err := kvstore.Open(kvstore.Config{InMemory: true, MaxConflictRetries: 10})
	if err != nil {
		t.Fatalf("kvstore.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store.New(kv)
}

func TestSeed(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	res, err := Seed(ctx, st, catalog.Fixtures())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	wantPlaylists := len(movieTemplates) + len(bookTemplates) + len(mixedTemplates)
	if res.Users != DummyUsers || res.Playlists != wantPlaylists || res.Removed != 0 {
		t.Errorf("Seed() = %+v", res)
	}
	// 1160018 and 783416 appear twice each and are not in the fixtures.
	if res.SkippedItems != 4 {
		t.Errorf("SkippedItems = %d, want 4", res.SkippedItems)
	}
	if res.Friendships != DummyUsers || res.Requests != DummyUsers/2 || res.Likes == 0 {
		t.Errorf("social counts = %+v", res)
	}
	// 3..8 wishlist items and 2..5 recommendations per user, 14 of 33 viewed.
	if res.WishlistItems != 51 || res.Recommendations != 33 || res.ViewedRecommendations != 14 {
		t.Errorf("content counts = %+v", res)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Users != res.Users || stats.Playlists != res.Playlists || stats.PlaylistItems != res.Items ||
		stats.Likes != res.Likes || stats.Friendships != res.Friendships || stats.PendingRequests != res.Requests {
		t.Errorf("Stats() = %+v does not match Seed() = %+v", stats, res)
	}
	if stats.WishlistItems != res.WishlistItems || stats.Recommendations != res.Recommendations ||
		stats.UnviewedRecommendations != res.Recommendations-res.ViewedRecommendations ||
		stats.Notifications != res.Recommendations {
		t.Errorf("Stats() = %+v does not match seeded content %+v", stats, res)
	}

	for i := 0; i < DummyUsers; i++ {
		u, err := st.Users.FindByEmail(ctx, DummyEmail(i))
		if err != nil {
			t.Fatalf("FindByEmail(%d) error = %v", i, err)
		}
		wishlist, err := st.Wishlist.List(ctx, u.ID)
		if err != nil {
			t.Fatalf("Wishlist.List() error = %v", err)
		}
		if n := len(wishlist); n < 3 || n > 8 {
			t.Errorf("user%d wishlist has %d items, want 3..8", i, n)
		}
		recs, err := st.Recommendations.List(ctx, u.ID)
		if err != nil {
			t.Fatalf("Recommendations.List() error = %v", err)
		}
		if n := len(recs); n < 2 || n > 5 {
			t.Errorf("user%d received %d recommendations, want 2..5", i, n)
		}
		for _, r := range recs {
			ok, err := st.Social.IsFriend(ctx, u.ID, r.From)
			if err != nil || !ok {
				t.Errorf("user%d got a recommendation from non-friend %s (err %v)", i, r.From, err)
			}
		}
	}

	report, err := st.Playlists.ReconcileLikes(ctx)
	if err != nil {
		t.Fatalf("ReconcileLikes() error = %v", err)
	}
	if report.CountersFixed != 0 || report.DanglingRemoved != 0 {
		t.Errorf("seeded likes are inconsistent: %+v", report)
	}

	u, err := st.Users.Authenticate(ctx, DummyEmail(0), DummyPassword)
	if err != nil {
		t.Fatalf("Authenticate(user0) error = %v", err)
	}
	if u.Name != "김민준" || u.Bio != "안녕하세요, 김민준입니다. 영화와 책을 좋아합니다!" {
		t.Errorf("user0 = %+v", u)
	}
}

func TestSeed_ReplacesPreviousDemoDataAndKeepsRealUsers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	human, err := st.Users.Create(ctx, store.NewUser{Email: "real@example.com", Password: "pw", Name: "Real"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := Seed(ctx, st, catalog.Fixtures())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	demo, err := st.Users.FindByEmail(ctx, DummyEmail(3))
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if err := st.Social.AddFriend(ctx, human.ID, demo.ID); err != nil {
		t.Fatalf("AddFriend() error = %v", err)
	}

	second, err := Seed(ctx, st, catalog.Fixtures())
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if second.Removed != DummyUsers {
		t.Errorf("Removed = %d, want %d", second.Removed, DummyUsers)
	}
	if second.Playlists != first.Playlists || second.Likes != first.Likes {
		t.Errorf("reseed differs: %+v vs %+v", second, first)
	}

	users, err := st.Users.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != DummyUsers+1 {
		t.Errorf("len(users) = %d, want %d", len(users), DummyUsers+1)
	}
	friends, err := st.Social.Friends(ctx, human.ID)
	if err != nil {
		t.Fatalf("Friends() error = %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("human user kept a friendship with a deleted demo user: %v", friends)
	}
}

func TestClear(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	n, err := Clear(ctx, st)
	if err != nil || n != 0 {
		t.Fatalf("Clear() on empty store = %d, %v", n, err)
	}

	if _, err := Seed(ctx, st, catalog.Fixtures()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	n, err = Clear(ctx, st)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != DummyUsers {
		t.Errorf("Clear() = %d, want %d", n, DummyUsers)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Users != 0 || stats.Playlists != 0 || stats.Likes != 0 || stats.Friendships != 0 || stats.PendingRequests != 0 ||
		stats.WishlistItems != 0 || stats.Recommendations != 0 || stats.Notifications != 0 {
		t.Errorf("Stats() after Clear() = %+v", stats)
	}
}

func TestIsDummyEmail(t *testing.T) {
	tests := map[string]bool{
		"user0@gmail.com":   true,
		"user9@gmail.com":   true,
		"user10@gmail.com":  false,
		"USER1@gmail.com":   false,
		"alice@example.com": false,
	}
	for email, want := range tests {
		if got := IsDummyEmail(email); got != want {
			t.Errorf("IsDummyEmail(%q) = %v, want %v", email, got, want)
		}
	}
}
