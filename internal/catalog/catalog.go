// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package catalog defines the movie and book catalogs the data layer copies
// content snapshots from. Network clients live outside this module; Static
// serves fixed entries for seeding and tests.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/shelfmate/internal/models"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("catalog item not found")

// Summary is a search hit.
type Summary struct {
	ID    models.ContentID   `json:"id"`
	Type  models.ContentType `json:"type"`
	Title string             `json:"title"`
	Image string             `json:"image,omitempty"`
}

// Detail is the full record of one catalog item.
type Detail struct {
	Summary
	Description string   `json:"description,omitempty"`
	Creators    []string `json:"creators,omitempty"`
	Released    string   `json:"released,omitempty"`
}

// Ref returns the snapshot stored in wishlists, playlists and recommendations.
func (d Detail) Ref() models.ContentRef {
	return models.ContentRef{
		ID:          d.ID,
		Type:        d.Type,
		Title:       d.Title,
		Image:       d.Image,
		Description: d.Description,
	}
}

// Catalog is one external catalog, movies or books.
type Catalog interface {
	Search(ctx context.Context, query string) ([]Summary, error)
	Get(ctx context.Context, id models.ContentID) (Detail, error)
}

// Set pairs the movie and book catalogs.
type Set struct {
	Movies Catalog
	Books  Catalog
}

// For returns the catalog serving t.
func (s Set) For(t models.ContentType) (Catalog, error) {
	switch t {
	case models.ContentMovie:
		if s.Movies != nil {
			return s.Movies, nil
		}
	case models.ContentBook:
		if s.Books != nil {
			return s.Books, nil
		}
	}
	return nil, fmt.Errorf("no catalog for content type %q", t)
}

// Lookup fetches the snapshot of (id, t) from the matching catalog.
func (s Set) Lookup(ctx context.Context, id models.ContentID, t models.ContentType) (models.ContentRef, error) {
	c, err := s.For(t)
	if err != nil {
		return models.ContentRef{}, err
	}
	d, err := c.Get(ctx, id)
	if err != nil {
		return models.ContentRef{}, err
	}
	return d.Ref(), nil
}

// First returns the best match for query, like a catalog search limited to one result.
func (s Set) First(ctx context.Context, t models.ContentType, query string) (models.ContentRef, error) {
	c, err := s.For(t)
	if err != nil {
		return models.ContentRef{}, err
	}
	hits, err := c.Search(ctx, query)
	if err != nil {
		return models.ContentRef{}, err
	}
	if len(hits) == 0 {
		return models.ContentRef{}, fmt.Errorf("search %q: %w", query, ErrNotFound)
	}
	d, err := c.Get(ctx, hits[0].ID)
	if err != nil {
		return models.ContentRef{}, err
	}
	return d.Ref(), nil
}
