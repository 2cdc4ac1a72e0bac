// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/validation"
)

// NewUser is the registration input.
type NewUser struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	Password     string `json:"password" validate:"required,max=128"`
	Name         string `json:"name" validate:"required,max=50"`
	ProfileImage string `json:"profileImage" validate:"omitempty,max=2048"`
	Bio          string `json:"bio" validate:"max=500"`
}

// UserPatch holds the profile fields to change. Nil fields are kept.
type UserPatch struct {
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	Password     *string `json:"password" validate:"omitempty,max=128"`
	Name         *string `json:"name" validate:"omitempty,max=50"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,max=2048"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
}

// UserDirectory manages the users collection.
type UserDirectory struct {
	s *Store
}

// List returns every user in registration order.
func (d *UserDirectory) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := d.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		var err error
		users, err = loadUsers(tx)
		return err
	})
	return orEmpty(users), err
}

// Create registers a user. The email must not belong to another user.
func (d *UserDirectory) Create(ctx context.Context, in NewUser) (models.User, error) {
	if err := validation.Check(&in); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := d.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		if emailTaken(users, in.Email, "") {
			return fmt.Errorf("%s: %w", in.Email, ErrEmailTaken)
		}

		user = models.User{
			ID:           d.s.newID(),
			Email:        in.Email,
			Password:     in.Password,
			Name:         in.Name,
			ProfileImage: in.ProfileImage,
			Bio:          in.Bio,
			CreatedAt:    d.s.timestamp(),
		}
		return save(tx, KeyUsers, append(users, user))
	})
	if err != nil {
		return models.User{}, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Update applies patch to the user. The stored session is refreshed when it
// holds the same user.
func (d *UserDirectory) Update(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	if err := validation.Check(&patch); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := d.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		i := userIndex(users, id)
		if i < 0 {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		if patch.Email != nil && emailTaken(users, *patch.Email, id) {
			return fmt.Errorf("%s: %w", *patch.Email, ErrEmailTaken)
		}

		applyPatch(&users[i], patch)
		user = users[i]
		if err := save(tx, KeyUsers, users); err != nil {
			return err
		}

		var current models.User
		found, err := tx.Get(KeyCurrentUser, &current)
		if err != nil {
			return err
		}
		if found && current.ID == id {
			return save(tx, KeyCurrentUser, user.Public())
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByID returns the user with id.
func (d *UserDirectory) FindByID(ctx context.Context, id string) (models.User, error) {
	return d.find(ctx, func(u models.User) bool { return u.ID == id }, id)
}

// FindByEmail returns the user registered with email. Matching is exact.
func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return d.find(ctx, func(u models.User) bool { return u.Email == email }, email)
}

// Authenticate returns the user whose email and password both match.
func (d *UserDirectory) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := d.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}
	if err != nil || user.Password != password {
		logging.Ctx(ctx).Debug().Str("email", email).Msg("authentication failed")
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (d *UserDirectory) find(ctx context.Context, match func(models.User) bool, what string) (models.User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", what, ErrNotFound)
}

// emailTaken reports whether a user other than exceptID has email.
func emailTaken(users []models.User, email, exceptID string) bool {
	for _, u := range users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func applyPatch(u *models.User, p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}
