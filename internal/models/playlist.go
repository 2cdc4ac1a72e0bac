// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package models

import "time"

// Playlist is an ordered, owner-curated list of content.
// Likes always equals the number of liked-playlist index entries naming ID.
type Playlist struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	IsPublic    bool         `json:"isPublic"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
	Likes       int          `json:"likes"`
	Items       []ContentRef `json:"items"`
}

// HasItem reports whether the playlist already contains (id, t).
func (p *Playlist) HasItem(id ContentID, t ContentType) bool {
	for _, item := range p.Items {
		if item.Matches(id, t) {
			return true
		}
	}
	return false
}
