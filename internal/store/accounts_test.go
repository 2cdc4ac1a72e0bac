// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"slices"
	"testing"

	"github.com/tomtom215/shelfmate/internal/models"
)

func TestAccounts_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "doomed")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")
	dave := mustCreateUser(t, s, "dave")

	// Social: friends with bob, request to carol, request from dave.
	checkNoError(t, s.Social.AddFriend(ctx, u.ID, bob.ID))
	checkNoError(t, s.Social.AddFriend(ctx, carol.ID, bob.ID))
	checkNoError(t, s.Social.SendRequest(ctx, u.ID, carol.ID))
	checkNoError(t, s.Social.SendRequest(ctx, dave.ID, u.ID))

	// Content.
	_, err := s.Wishlist.Add(ctx, u.ID, movie("1"))
	checkNoError(t, err)
	own := mustCreatePlaylist(t, s, u.ID, "Mine")
	bobs := mustCreatePlaylist(t, s, bob.ID, "Bob's")
	_, err = s.Playlists.Like(ctx, bob.ID, own.ID)
	checkNoError(t, err)
	_, err = s.Playlists.Like(ctx, u.ID, bobs.ID)
	checkNoError(t, err)
	_, err = s.Playlists.Like(ctx, carol.ID, bobs.ID)
	checkNoError(t, err)
	_, err = s.Recommendations.Send(ctx, bob.ID, []string{u.ID}, movie("2"), "")
	checkNoError(t, err)
	_, err = s.Recommendations.Send(ctx, u.ID, []string{carol.ID}, movie("3"), "")
	checkNoError(t, err)
	_, err = s.Reviews.Add(ctx, u.ID, "1", models.ContentMovie, ReviewInput{Rating: 3})
	checkNoError(t, err)
	_, err = s.Reviews.Add(ctx, bob.ID, "1", models.ContentMovie, ReviewInput{Rating: 5})
	checkNoError(t, err)
	_, err = s.History.Record(ctx, u.ID, movie("1"), nil, "")
	checkNoError(t, err)
	checkNoError(t, s.Session.SetCurrent(ctx, u))

	checkNoError(t, s.Accounts.Delete(ctx, u.ID))

	_, err = s.Users.FindByID(ctx, u.ID)
	checkErrorIs(t, err, ErrNotFound)

	for _, other := range []string{bob.ID, carol.ID, dave.ID} {
		friends, err := s.Social.Friends(ctx, other)
		checkNoError(t, err)
		if slices.Contains(friends, u.ID) {
			t.Errorf("%s still lists the deleted user as friend", other)
		}
		r, err := s.Social.Requests(ctx, other)
		checkNoError(t, err)
		if slices.Contains(r.Sent, u.ID) || slices.Contains(r.Received, u.ID) {
			t.Errorf("%s still has a request with the deleted user: %+v", other, r)
		}
	}
	ok, err := s.Social.IsFriend(ctx, carol.ID, bob.ID)
	checkNoError(t, err)
	if !ok {
		t.Error("unrelated friendship was removed")
	}

	wishlist, err := s.Wishlist.List(ctx, u.ID)
	checkNoError(t, err)
	if len(wishlist) != 0 {
		t.Errorf("wishlist survived: %+v", wishlist)
	}

	owned, err := s.Playlists.ListByOwner(ctx, u.ID)
	checkNoError(t, err)
	if len(owned) != 0 {
		t.Errorf("playlists survived: %+v", owned)
	}
	bobLiked, err := s.Playlists.Liked(ctx, bob.ID)
	checkNoError(t, err)
	if slices.Contains(bobLiked, own.ID) {
		t.Error("bob's liked index still names the deleted playlist")
	}
	uLiked, err := s.Playlists.Liked(ctx, u.ID)
	checkNoError(t, err)
	if len(uLiked) != 0 {
		t.Errorf("liked index survived: %v", uLiked)
	}
	checkLikes(t, s, bobs.ID, 1)

	recs, err := s.Recommendations.List(ctx, u.ID)
	checkNoError(t, err)
	if len(recs) != 0 {
		t.Errorf("received recommendations survived: %+v", recs)
	}
	carolRecs, err := s.Recommendations.List(ctx, carol.ID)
	checkNoError(t, err)
	if len(carolRecs) != 1 || carolRecs[0].From != u.ID {
		t.Errorf("sent recommendations should remain with a dangling sender: %+v", carolRecs)
	}
	carolNotes, err := s.Notifications.List(ctx, carol.ID)
	checkNoError(t, err)
	if len(carolNotes) != 0 {
		t.Errorf("notifications from the deleted user survived: %+v", carolNotes)
	}

	reviews, err := s.Reviews.List(ctx, "1", models.ContentMovie)
	checkNoError(t, err)
	if len(reviews) != 1 || reviews[0].UserID != bob.ID {
		t.Errorf("reviews = %+v, want only bob's", reviews)
	}

	history, err := s.History.List(ctx, u.ID, "")
	checkNoError(t, err)
	if len(history) != 0 {
		t.Errorf("history survived: %+v", history)
	}

	_, err = s.Session.Current(ctx)
	checkErrorIs(t, err, ErrNotFound)

	report, err := s.Playlists.ReconcileLikes(ctx)
	checkNoError(t, err)
	if report.CountersFixed != 0 || report.DanglingRemoved != 0 {
		t.Errorf("cascade left likes inconsistent: %+v", report)
	}
}

func TestAccounts_DeleteUnknown(t *testing.T) {
	s := newTestStore(t)
	checkErrorIs(t, s.Accounts.Delete(context.Background(), "ghost"), ErrNotFound)
}

func TestAccounts_DeleteKeepsOtherSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreateUser(t, s, "alice")
	b := mustCreateUser(t, s, "bob")
	checkNoError(t, s.Session.SetCurrent(ctx, a))

	checkNoError(t, s.Accounts.Delete(ctx, b.ID))

	current, err := s.Session.Current(ctx)
	checkNoError(t, err)
	if current.ID != a.ID {
		t.Errorf("Current() = %s, want alice", current.ID)
	}
}

func TestAccounts_NoWritesAfterDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "alice")
	checkNoError(t, s.Accounts.Delete(ctx, u.ID))

	_, err := s.Wishlist.Add(ctx, u.ID, movie("1"))
	checkErrorIs(t, err, ErrNotFound)
	_, err = s.Wishlist.Remove(ctx, u.ID, "1", models.ContentMovie)
	checkErrorIs(t, err, ErrNotFound)
	_, err = s.History.Record(ctx, u.ID, movie("1"), nil, "")
	checkErrorIs(t, err, ErrNotFound)

	stats, err := s.Stats(ctx)
	checkNoError(t, err)
	if stats.WishlistItems != 0 || stats.HistoryEntries != 0 {
		t.Errorf("deleted user's partitions came back: %+v", stats)
	}
}
