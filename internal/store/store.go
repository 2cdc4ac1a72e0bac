// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package store implements the Shelfmate data layer over the key-value store.
//
// Every collection (users, wishlists, playlists, friendships, ...) lives under
// one key of kvstore as a whole JSON document. Each mutating operation reads
// the collections it needs, changes them in memory and writes them back inside
// a single kvstore.Update, so cross-collection invariants such as friendship
// symmetry and playlist like counters hold even when a write fails halfway.
//
// A Store is built once at startup and handed to its callers:
//
//	kv, err := kvstore.Open(kvstore.DefaultConfig(path))
//	st := store.New(kv)
//	user, err := st.Users.Create(ctx, store.NewUser{Email: "a@b.c", Password: "pw", Name: "A"})
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/shelfmate/internal/kvstore"
)

// Store groups the data-layer components that share one key-value store.
type Store struct {
	kv    *kvstore.Store
	now   func() time.Time
	newID func() string

	Users           *UserDirectory
	Session         *Session
	Social          *SocialGraph
	Wishlist        *WishlistStore
	Playlists       *PlaylistStore
	Recommendations *RecommendationStore
	Reviews         *ReviewStore
	History         *HistoryStore
	Notifications   *NotificationStore
	Accounts        *Accounts
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator used for new record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New builds a Store over kv.
func New(kv *kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Users = &UserDirectory{s: s}
	s.Session = &Session{s: s}
	s.Social = &SocialGraph{s: s}
	s.Wishlist = &WishlistStore{s: s}
	s.Playlists = &PlaylistStore{s: s}
	s.Recommendations = &RecommendationStore{s: s}
	s.Reviews = &ReviewStore{s: s}
	s.History = &HistoryStore{s: s}
	s.Notifications = &NotificationStore{s: s}
	s.Accounts = &Accounts{s: s}
	return s
}

// KV returns the underlying key-value store.
func (s *Store) KV() *kvstore.Store {
	return s.kv
}

// timestamp returns the current time in UTC, truncated to milliseconds like
// the stored ISO-8601 values.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
