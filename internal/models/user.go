// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package models

import "time"

// User is a registered account. Email is unique and compared case-sensitively.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of u without the password.
func (u User) Public() User {
	u.Password = ""
	return u
}

// FriendRequests holds the pending requests of one user.
// If B is in A.Sent then A is in B.Received.
type FriendRequests struct {
	Sent     []string `json:"sent"`
	Received []string `json:"received"`
}

// FriendStatus is the relationship of one user to another as seen by the first.
type FriendStatus string

const (
	FriendStatusNone            FriendStatus = "none"
	FriendStatusRequestSent     FriendStatus = "request_sent"
	FriendStatusRequestReceived FriendStatus = "request_received"
	FriendStatusFriends         FriendStatus = "friends"
)

// UserSearchResult is a user annotated with its relationship to the searcher.
type UserSearchResult struct {
	User
	IsFriend        bool `json:"isFriend"`
	RequestSent     bool `json:"requestSent"`
	RequestReceived bool `json:"requestReceived"`
}
