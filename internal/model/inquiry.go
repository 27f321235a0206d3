package model

import "time"

// Inquiry is a message sent by a prospective tenant to the owner of a
// listing.  Only the listing owner may read it.
type Inquiry struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	SenderID  string    `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Listing   *Listing  `json:"listing,omitempty"`
	Sender    *Profile  `json:"sender,omitempty"`
}
