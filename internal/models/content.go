// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package models defines the records persisted by the store.
// JSON field names are the stored layout and must not change.
package models

import (
	"bytes"
	"fmt"
	"math/big"
	"time"

	"github.com/goccy/go-json"
)

// ContentType distinguishes movies from books.
type ContentType string

const (
	ContentMovie ContentType = "movie"
	ContentBook  ContentType = "book"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	return t == ContentMovie || t == ContentBook
}

// ContentID identifies an item in its external catalog. Movie ids are numeric
// in the catalog and were stored as JSON numbers, book ids are strings; both
// decode into a ContentID and it always encodes as a string.
type ContentID string

// UnmarshalJSON accepts a JSON string or an integral JSON number. Numbers are
// normalized to their integer form, so 42, 42.0 and 4.2e1 are the same id.
func (id *ContentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ContentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("content id must be a string or number: %w", err)
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return fmt.Errorf("content id %s is not an integer", n)
	}
	*id = ContentID(r.Num().String())
	return nil
}

// ContentKey is the identity of a content item across both catalogs.
type ContentKey struct {
	ID   ContentID
	Type ContentType
}

// ContentRef is the denormalized snapshot of a catalog item copied into
// wishlists, playlists, recommendations and history.
type ContentRef struct {
	ID          ContentID   `json:"id" validate:"required"`
	Type        ContentType `json:"type" validate:"required,oneof=movie book"`
	Title       string      `json:"title" validate:"max=500"`
	Image       string      `json:"image,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Key returns the (id, type) identity of the reference.
func (c ContentRef) Key() ContentKey {
	return ContentKey{ID: c.ID, Type: c.Type}
}

// Matches reports whether the reference has the given identity.
func (c ContentRef) Matches(id ContentID, t ContentType) bool {
	return c.ID == id && c.Type == t
}

// WishlistItem is a content reference saved by a user.
type WishlistItem struct {
	ContentRef
	AddedAt time.Time `json:"addedAt"`
}
