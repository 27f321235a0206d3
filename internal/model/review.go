package model

import "time"

// Rating bounds accepted for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Vote values.  VoteClear is only an API signal and is never stored.
const (
	VoteDown  = -1
	VoteClear = 0
	VoteUp    = 1
)

// Review is a user's rating of a listing.  At most one review exists per
// (ListingID, UserID); resubmitting replaces rating and comment.
type Review struct {
	ID        string          `json:"id"`
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Rating    int             `json:"rating"`
	Comment   *string         `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
	User      *ProfileSummary `json:"user,omitempty"`
	Votes     []Vote          `json:"votes,omitempty"`
}

// Vote is one voter's current vote on a review.
type Vote struct {
	UserID   string `json:"user_id"`
	VoteType int    `json:"vote_type"`
}

// ReviewVote mirrors a row of the `review_votes` table.
type ReviewVote struct {
	ReviewID  string
	UserID    string
	VoteType  int
	CreatedAt time.Time
}
