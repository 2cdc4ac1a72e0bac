// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package models

import (
	"fmt"
	"time"
)

// Recommendation is a content item sent to a user by a friend.
type Recommendation struct {
	ContentRef
	From          string    `json:"from"`
	RecommendedAt time.Time `json:"recommendedAt"`
	Viewed        bool      `json:"viewed"`
}

// Review is one user's rating of a content item. A user has at most one
// review per item.
type Review struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Rating    int        `json:"rating"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ReviewKey returns the reviews collection key of a content item, "<type>_<id>".
func ReviewKey(t ContentType, id ContentID) string {
	return fmt.Sprintf("%s_%s", t, id)
}

// HistoryEntry records that a user watched a movie or read a book.
type HistoryEntry struct {
	ContentRef
	Rating    *int      `json:"rating"`
	Review    string    `json:"review"`
	WatchedAt time.Time `json:"watchedAt"`
}

// NotificationRecommendation is the only notification type.
const NotificationRecommendation = "recommendation"

// Notification tells a user that something was sent to them.
type Notification struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	FromUserID string      `json:"fromUserId"`
	ToUserID   string      `json:"toUserId"`
	Item       ContentRef  `json:"item"`
	ItemType   ContentType `json:"itemType"`
	Message    string      `json:"message"`
	Read       bool        `json:"read"`
	CreatedAt  time.Time   `json:"createdAt"`
}
