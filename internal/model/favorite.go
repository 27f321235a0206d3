package model

import "time"

// Favorite links a user to a listing they saved.  The pair
// (UserID, ListingID) is unique; presence means favorited.
type Favorite struct {
	ID        string    // favorites.id
	UserID    string    // favorites.user_id
	ListingID string    // favorites.listing_id
	CreatedAt time.Time // favorites.created_at
}
