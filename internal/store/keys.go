// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package store

// Collection keys. The values are the stored layout of existing data.
const (
	KeyCurrentUser     = "userInfo"
	KeyUsers           = "users"
	KeyWishlist        = "wishlist"
	KeyPlaylists       = "myPlaylists"
	KeyLikedPlaylists  = "likedPlaylists"
	KeyRecommendations = "recommendedContent"
	KeyReviews         = "reviews"
	KeyFriends         = "friends"
	KeyFriendRequests  = "friendRequests"
	KeyHistory         = "viewedContent"
	KeyNotifications   = "notifications"
)

// CollectionKeys lists every collection key in the order Stats and wipes visit them.
var CollectionKeys = []string{
	KeyCurrentUser,
	KeyUsers,
	KeyWishlist,
	KeyPlaylists,
	KeyLikedPlaylists,
	KeyRecommendations,
	KeyReviews,
	KeyFriends,
	KeyFriendRequests,
	KeyHistory,
	KeyNotifications,
}
