// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/models"
)

// SocialGraph manages friendships and pending friend requests.
//
// Every unordered pair of users is in exactly one state: none, a request in
// one direction, or friends. Friend lists are kept symmetric and a pair that
// is friends never also has a pending request.
type SocialGraph struct {
	s *Store
}

// graph is the in-memory form of both social collections.
type graph struct {
	friends  map[string][]string
	requests map[string]models.FriendRequests
}

func loadGraph(tx *kvstore.Tx) (*graph, error) {
	friends, err := loadMap[[]string](tx, KeyFriends)
	if err != nil {
		return nil, err
	}
	requests, err := loadMap[models.FriendRequests](tx, KeyFriendRequests)
	if err != nil {
		return nil, err
	}
	return &graph{friends: friends, requests: requests}, nil
}

func (g *graph) save(tx *kvstore.Tx) error {
	if err := save(tx, KeyFriends, g.friends); err != nil {
		return err
	}
	return save(tx, KeyFriendRequests, g.requests)
}

func (g *graph) areFriends(a, b string) bool {
	return slices.Contains(g.friends[a], b)
}

func (g *graph) hasRequest(from, to string) bool {
	return slices.Contains(g.requests[from].Sent, to)
}

func (g *graph) requestsOf(id string) models.FriendRequests {
	r := g.requests[id]
	return models.FriendRequests{Sent: orEmpty(r.Sent), Received: orEmpty(r.Received)}
}

func (g *graph) addRequest(from, to string) {
	sender := g.requestsOf(from)
	sender.Sent = appendUnique(sender.Sent, to)
	g.requests[from] = sender

	recipient := g.requestsOf(to)
	recipient.Received = appendUnique(recipient.Received, from)
	g.requests[to] = recipient
}

// dropRequests removes any pending request between a and b, in both directions.
func (g *graph) dropRequests(a, b string) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		id, other := pair[0], pair[1]
		if _, ok := g.requests[id]; !ok {
			continue
		}
		r := g.requestsOf(id)
		r.Sent = without(r.Sent, other)
		r.Received = without(r.Received, other)
		g.requests[id] = r
	}
}

func (g *graph) link(a, b string) {
	g.friends[a] = appendUnique(g.friends[a], b)
	g.friends[b] = appendUnique(g.friends[b], a)
	g.dropRequests(a, b)
}

func (g *graph) unlink(a, b string) {
	if list, ok := g.friends[a]; ok {
		g.friends[a] = without(list, b)
	}
	if list, ok := g.friends[b]; ok {
		g.friends[b] = without(list, a)
	}
}

func (g *graph) status(userID, targetID string) models.FriendStatus {
	switch {
	case g.areFriends(userID, targetID):
		return models.FriendStatusFriends
	case g.hasRequest(userID, targetID):
		return models.FriendStatusRequestSent
	case g.hasRequest(targetID, userID):
		return models.FriendStatusRequestReceived
	default:
		return models.FriendStatusNone
	}
}

// mutate runs fn over the loaded graph and writes it back when fn succeeds.
func (sg *SocialGraph) mutate(ctx context.Context, fn func(tx *kvstore.Tx, g *graph) error) error {
	return sg.s.kv.Update(ctx, func(tx *kvstore.Tx) error {
		g, err := loadGraph(tx)
		if err != nil {
			return err
		}
		if err := fn(tx, g); err != nil {
			return err
		}
		return g.save(tx)
	})
}

func (sg *SocialGraph) view(ctx context.Context, fn func(tx *kvstore.Tx, g *graph) error) error {
	return sg.s.kv.View(ctx, func(tx *kvstore.Tx) error {
		g, err := loadGraph(tx)
		if err != nil {
			return err
		}
		return fn(tx, g)
	})
}

// SendRequest records a friend request from one user to another. Sending the
// same request again is a no-op.
func (sg *SocialGraph) SendRequest(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return ErrSelfRequest
	}
	err := sg.mutate(ctx, func(tx *kvstore.Tx, g *graph) error {
		if err := requireUsers(tx, fromID, toID); err != nil {
			return err
		}
		switch {
		case g.areFriends(fromID, toID):
			return ErrAlreadyFriends
		case g.hasRequest(toID, fromID):
			return ErrRequestExists
		}
		g.addRequest(fromID, toID)
		return nil
	})
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().Str("from", fromID).Str("to", toID).Msg("friend request sent")
	return nil
}

// AcceptRequest accepts the pending request fromID sent to userID and makes
// the two users friends.
func (sg *SocialGraph) AcceptRequest(ctx context.Context, userID, fromID string) error {
	err := sg.mutate(ctx, func(_ *kvstore.Tx, g *graph) error {
		if !slices.Contains(g.requests[userID].Received, fromID) {
			return fmt.Errorf("friend request from %s: %w", fromID, ErrNotFound)
		}
		g.link(userID, fromID)
		return nil
	})
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().Str("user_id", userID).Str("friend_id", fromID).Msg("friend request accepted")
	return nil
}

// RejectRequest discards the request fromID sent to userID.
func (sg *SocialGraph) RejectRequest(ctx context.Context, userID, fromID string) error {
	return sg.mutate(ctx, func(_ *kvstore.Tx, g *graph) error {
		g.dropRequests(userID, fromID)
		return nil
	})
}

// CancelRequest withdraws the request fromID sent to toID.
func (sg *SocialGraph) CancelRequest(ctx context.Context, fromID, toID string) error {
	return sg.mutate(ctx, func(_ *kvstore.Tx, g *graph) error {
		g.dropRequests(fromID, toID)
		return nil
	})
}

// AddFriend makes a and b friends directly, clearing any pending request between them.
func (sg *SocialGraph) AddFriend(ctx context.Context, a, b string) error {
	if a == b {
		return ErrSelfRequest
	}
	return sg.mutate(ctx, func(tx *kvstore.Tx, g *graph) error {
		if err := requireUsers(tx, a, b); err != nil {
			return err
		}
		if g.areFriends(a, b) {
			return ErrAlreadyFriends
		}
		g.link(a, b)
		return nil
	})
}

// RemoveFriend ends the friendship between a and b on both sides.
func (sg *SocialGraph) RemoveFriend(ctx context.Context, a, b string) error {
	return sg.mutate(ctx, func(_ *kvstore.Tx, g *graph) error {
		g.unlink(a, b)
		return nil
	})
}

// Friends returns the friend ids of userID.
func (sg *SocialGraph) Friends(ctx context.Context, userID string) ([]string, error) {
	var friends []string
	err := sg.view(ctx, func(_ *kvstore.Tx, g *graph) error {
		friends = slices.Clone(g.friends[userID])
		return nil
	})
	return orEmpty(friends), err
}

// IsFriend reports whether a and b are friends.
func (sg *SocialGraph) IsFriend(ctx context.Context, a, b string) (bool, error) {
	var ok bool
	err := sg.view(ctx, func(_ *kvstore.Tx, g *graph) error {
		ok = g.areFriends(a, b)
		return nil
	})
	return ok, err
}

// Requests returns the pending requests sent and received by userID.
func (sg *SocialGraph) Requests(ctx context.Context, userID string) (models.FriendRequests, error) {
	var r models.FriendRequests
	err := sg.view(ctx, func(_ *kvstore.Tx, g *graph) error {
		r = g.requestsOf(userID)
		return nil
	})
	return r, err
}

// Status returns the relationship of userID to targetID.
func (sg *SocialGraph) Status(ctx context.Context, userID, targetID string) (models.FriendStatus, error) {
	status := models.FriendStatusNone
	err := sg.view(ctx, func(_ *kvstore.Tx, g *graph) error {
		status = g.status(userID, targetID)
		return nil
	})
	return status, err
}

// FriendsWithInfo resolves the friends of userID to user records. Ids that no
// longer resolve are skipped.
func (sg *SocialGraph) FriendsWithInfo(ctx context.Context, userID string) ([]models.User, error) {
	friends := []models.User{}
	err := sg.view(ctx, func(tx *kvstore.Tx, g *graph) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, id := range g.friends[userID] {
			if i := userIndex(users, id); i >= 0 {
				friends = append(friends, users[i].Public())
			}
		}
		return nil
	})
	return friends, err
}

// SearchUsers matches query case-insensitively against the name and email of
// every user except callerID. An empty query matches nobody.
func (sg *SocialGraph) SearchUsers(ctx context.Context, query, callerID string) ([]models.UserSearchResult, error) {
	results := []models.UserSearchResult{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results, nil
	}

	err := sg.view(ctx, func(tx *kvstore.Tx, g *graph) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.ID == callerID {
				continue
			}
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
			results = append(results, models.UserSearchResult{
				User:            u.Public(),
				IsFriend:        g.areFriends(callerID, u.ID),
				RequestSent:     g.hasRequest(callerID, u.ID),
				RequestReceived: g.hasRequest(u.ID, callerID),
			})
		}
		return nil
	})
	return results, err
}
