// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/models"
	"github.com/tomtom215/shelfmate/internal/validation"
)

// ReviewInput is the rating and text of a review.
type ReviewInput struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

// ReviewStore manages reviews keyed by content. Each user has at most one
// review per content item.
type ReviewStore struct {
	s *Store
}

func loadReviews(tx *kvstore.Tx) (map[string][]models.Review, error) {
	return loadMap[[]models.Review](tx, KeyReviews)
}

func reviewIndex(reviews []models.Review, userID string) int {
	return slices.IndexFunc(reviews, func(r models.Review) bool { return r.UserID == userID })
}

// List returns the reviews of a content item, oldest first.
func (rv *ReviewStore) List(ctx context.Context, contentID models.ContentID, t models.ContentType) ([]models.Review, error) {
	var reviews []models.Review
	err := rv.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		all, err := loadReviews(tx)
		if err != nil {
			return err
		}
		reviews = all[models.ReviewKey(t, contentID)]
		return nil
	})
	return orEmpty(reviews), err
}

// UserReview returns the review userID wrote for a content item.
func (rv *ReviewStore) UserReview(ctx context.Context, userID string, contentID models.ContentID, t models.ContentType) (models.Review, error) {
	reviews, err := rv.List(ctx, contentID, t)
	if err != nil {
		return models.Review{}, err
	}
	if i := reviewIndex(reviews, userID); i >= 0 {
		return reviews[i], nil
	}
	return models.Review{}, fmt.Errorf("review by %s of %s: %w", userID, models.ReviewKey(t, contentID), ErrNotFound)
}

// Add stores a new review. A second review by the same user is ErrAlreadyReviewed.
func (rv *ReviewStore) Add(ctx context.Context, userID string, contentID models.ContentID, t models.ContentType, in ReviewInput) (models.Review, error) {
	if err := validation.Check(&in); err != nil {
		return models.Review{}, err
	}

	var review models.Review
	err := rv.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		if err := requireUsers(tx, userID); err != nil {
			return err
		}
		all, err := loadReviews(tx)
		if err != nil {
			return err
		}
		key := models.ReviewKey(t, contentID)
		if reviewIndex(all[key], userID) >= 0 {
			return fmt.Errorf("%s: %w", key, ErrAlreadyReviewed)
		}

		review = models.Review{
			ID:        rv.s.newID(),
			UserID:    userID,
			Rating:    in.Rating,
			Text:      in.Text,
			CreatedAt: rv.s.timestamp(),
		}
		all[key] = append(all[key], review)
		return save(tx, KeyReviews, all)
	})
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Edit replaces the rating and text of the user's existing review.
func (rv *ReviewStore) Edit(ctx context.Context, userID string, contentID models.ContentID, t models.ContentType, in ReviewInput) (models.Review, error) {
	if err := validation.Check(&in); err != nil {
		return models.Review{}, err
	}

	var review models.Review
	err := rv.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadReviews(tx)
		if err != nil {
			return err
		}
		key := models.ReviewKey(t, contentID)
		i := reviewIndex(all[key], userID)
		if i < 0 {
			return fmt.Errorf("review by %s of %s: %w", userID, key, ErrNotFound)
		}

		now := rv.s.timestamp()
		r := &all[key][i]
		r.Rating = in.Rating
		r.Text = in.Text
		r.UpdatedAt = &now
		review = *r
		return save(tx, KeyReviews, all)
	})
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Delete removes the user's review of a content item.
func (rv *ReviewStore) Delete(ctx context.Context, userID string, contentID models.ContentID, t models.ContentType) error {
	return rv.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		all, err := loadReviews(tx)
		if err != nil {
			return err
		}
		key := models.ReviewKey(t, contentID)
		i := reviewIndex(all[key], userID)
		if i < 0 {
			return fmt.Errorf("review by %s of %s: %w", userID, key, ErrNotFound)
		}
		all[key] = slices.Delete(all[key], i, i+1)
		if len(all[key]) == 0 {
			delete(all, key)
		}
		return save(tx, KeyReviews, all)
	})
}

// Average returns the mean rating of a content item and the number of reviews.
// The mean is zero when there are none.
func (rv *ReviewStore) Average(ctx context.Context, contentID models.ContentID, t models.ContentType) (float64, int, error) {
	reviews, err := rv.List(ctx, contentID, t)
	if err != nil || len(reviews) == 0 {
		return 0, 0, err
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews), nil
}
