package service

import (
	"context"
	"strings"

	"github.com/iliyamo/campus-housing/internal/model"
)

// ReviewInput is the body of a review submission.
type ReviewInput struct {
	ListingID string  `json:"listing_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}

// ScoredReview is a review with its vote score attached.
type ScoredReview struct {
	model.Review
	Score int `json:"score"`
}

// ReviewSummary aggregates the reviews of one listing.  AverageRating is
// nil when the listing has no reviews.
type ReviewSummary struct {
	ReviewCount   int      `json:"review_count"`
	AverageRating *float64 `json:"average_rating"`
}

type ReviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Submit creates or replaces userID's review of a listing.
func (s *ReviewService) Submit(ctx context.Context, userID string, in ReviewInput) (*model.Review, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if in.ListingID == "" {
		return nil, invalid("missing required fields")
	}
	if in.Rating < model.MinRating || in.Rating > model.MaxRating {
		return nil, invalid("rating must be between 1 and 5")
	}
	comment := in.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	rev := &model.Review{ListingID: in.ListingID, UserID: userID, Rating: in.Rating, Comment: comment}
	if err := s.reviews.Upsert(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete removes review id if userID wrote it.  The store reports a missing
// review and a foreign one as distinct errors.
func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if id == "" {
		return invalid("review id is required")
	}
	return s.reviews.DeleteByIDAndOwner(ctx, id, userID)
}

// ListForListing returns the reviews of a listing, newest first, with
// reviewer profile, votes and score.
func (s *ReviewService) ListForListing(ctx context.Context, listingID string) ([]ScoredReview, error) {
	if listingID == "" {
		return nil, invalid("listing id is required")
	}
	revs, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	out := make([]ScoredReview, 0, len(revs))
	for _, r := range revs {
		if r.Votes == nil {
			r.Votes = []model.Vote{}
		}
		out = append(out, ScoredReview{Review: r, Score: Score(r.Votes)})
	}
	return out, nil
}

// Summary returns the review count and average rating of a listing.
func (s *ReviewService) Summary(ctx context.Context, listingID string) (ReviewSummary, error) {
	if listingID == "" {
		return ReviewSummary{}, invalid("listing id is required")
	}
	revs, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return ReviewSummary{}, err
	}
	sum := ReviewSummary{ReviewCount: len(revs)}
	if avg, ok := AverageRating(revs); ok {
		sum.AverageRating = &avg
	}
	return sum, nil
}

// Vote records userID's vote on a review.  VoteClear removes any existing
// vote; VoteUp and VoteDown replace it.
func (s *ReviewService) Vote(ctx context.Context, userID, reviewID string, value int) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if reviewID == "" {
		return invalid("review id is required")
	}
	switch value {
	case model.VoteClear:
		return s.reviews.DeleteVote(ctx, reviewID, userID)
	case model.VoteUp, model.VoteDown:
		return s.reviews.UpsertVote(ctx, reviewID, userID, value)
	}
	return invalid("vote_type must be -1, 0 or 1")
}
