// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import "errors"

// Sentinel errors returned by the store components. Callers branch with errors.Is.
// Malformed input is reported as *validation.RequestValidationError instead.
var (
	// ErrNotFound is returned when a user, playlist, request, review or
	// content record is absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when another user already has the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrSelfRequest is returned when a user targets themselves with a
	// friend request, friendship or recommendation.
	ErrSelfRequest = errors.New("cannot target yourself")

	// ErrAlreadyFriends is returned when a request or friendship is created
	// for a pair that is already friends.
	ErrAlreadyFriends = errors.New("already friends")

	// ErrRequestExists is returned when the target already has a pending
	// request to the sender. Accepting it is the way forward.
	ErrRequestExists = errors.New("reverse friend request pending")

	// ErrNotOwner is returned when a playlist is changed by someone other than its owner.
	ErrNotOwner = errors.New("playlist belongs to another user")

	// ErrAlreadyReviewed is returned when a user reviews the same content twice.
	ErrAlreadyReviewed = errors.New("content already reviewed by user")

	// ErrInvalidCredentials is returned when email and password do not match a user.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
