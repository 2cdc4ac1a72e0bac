// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"fmt"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/models"
)

// Session holds the signed-in user. The password is never stored with it.
type Session struct {
	s *Store
}

// SetCurrent makes user the signed-in user.
func (ss *Session) SetCurrent(ctx context.Context, user models.User) error {
	return ss.s.kv.Set(ctx, KeyCurrentUser, user.Public())
}

// Current returns the signed-in user, or ErrNotFound when nobody is signed in.
func (ss *Session) Current(ctx context.Context) (models.User, error) {
	var user models.User
	found, err := ss.s.kv.Get(ctx, KeyCurrentUser, &user)
	if err != nil {
		return models.User{}, err
	}
	if !found || user.ID == "" {
		return models.User{}, fmt.Errorf("current user: %w", ErrNotFound)
	}
	return user, nil
}

// Login authenticates and stores the user as the current session.
func (ss *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := ss.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == email && u.Password == password {
				user = u
				return save(tx, KeyCurrentUser, u.Public())
			}
		}
		return ErrInvalidCredentials
	})
	if err != nil {
		return models.User{}, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user signed in")
	return user, nil
}

// Clear signs out. It is a no-op when nobody is signed in.
func (ss *Session) Clear(ctx context.Context) error {
	return ss.s.kv.Remove(ctx, KeyCurrentUser)
}
