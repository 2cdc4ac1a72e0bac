// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/shelfmate/internal/models"
)

// Static is an in-memory catalog over a fixed list of items.
type Static struct {
	items []Detail
	byID  map[models.ContentID]int
}

// NewStatic builds a catalog over items. Later duplicates of an id are ignored.
func NewStatic(items []Detail) *Static {
	s := &Static{byID: make(map[models.ContentID]int, len(items))}
	for _, d := range items {
		if _, dup := s.byID[d.ID]; dup {
			continue
		}
		s.byID[d.ID] = len(s.items)
		s.items = append(s.items, d)
	}
	return s
}

// Search returns the items whose title and creators contain every word of
// query, ignoring case, in catalog order. A blank query returns nothing.
func (s *Static) Search(ctx context.Context, query string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := strings.Fields(strings.ToLower(query))
	hits := []Summary{}
	if len(words) == 0 {
		return hits, nil
	}

	for _, d := range s.items {
		haystack := strings.ToLower(d.Title + " " + strings.Join(d.Creators, " "))
		if containsAll(haystack, words) {
			hits = append(hits, d.Summary)
		}
	}
	return hits, nil
}

// Get returns the item with id.
func (s *Static) Get(ctx context.Context, id models.ContentID) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}
	i, ok := s.byID[id]
	if !ok {
		return Detail{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.items[i], nil
}

// Len returns the number of items.
func (s *Static) Len() int {
	return len(s.items)
}

func containsAll(haystack string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}
