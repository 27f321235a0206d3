package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-housing/internal/model"
)

// ReviewRepo persists reviews and their votes.  reviews has a unique key
// on (listing_id, user_id); review_votes on (review_id, user_id).
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Upsert writes rev keyed by (ListingID, UserID).  A second submission by
// the same user replaces rating and comment and keeps the original id.
// On return rev holds the stored row.
func (r *ReviewRepo) Upsert(ctx context.Context, rev *model.Review) error {
	const q = `INSERT INTO reviews (id, listing_id, user_id, rating, comment)
		VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment)`
	_, err := r.db.ExecContext(ctx, q, uuid.NewString(), rev.ListingID, rev.UserID, rev.Rating, stringOrNull(rev.Comment))
	if err != nil {
		if isMissingReference(err) {
			return ErrNotFound
		}
		return fmt.Errorf("ReviewRepo.Upsert: %w", err)
	}

	const sel = `SELECT id, listing_id, user_id, rating, comment, created_at
		FROM reviews WHERE listing_id = ? AND user_id = ?`
	var comment sql.NullString
	if err := r.db.QueryRowContext(ctx, sel, rev.ListingID, rev.UserID).
		Scan(&rev.ID, &rev.ListingID, &rev.UserID, &rev.Rating, &comment, &rev.CreatedAt); err != nil {
		return fmt.Errorf("ReviewRepo.Upsert: reload: %w", err)
	}
	rev.Comment = nullString(comment)
	return nil
}

// DeleteByIDAndOwner removes a review only when it belongs to userID.
// When nothing is deleted it distinguishes a missing review (ErrNotFound)
// from one owned by someone else (ErrForbidden).
func (r *ReviewRepo) DeleteByIDAndOwner(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("ReviewRepo.DeleteByIDAndOwner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReviewRepo.DeleteByIDAndOwner: %w", err)
	}
	if n > 0 {
		return nil
	}
	var owner string
	err = r.db.QueryRowContext(ctx, `SELECT user_id FROM reviews WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("ReviewRepo.DeleteByIDAndOwner: lookup: %w", err)
	}
	return ErrForbidden
}

// ListByListing returns the reviews of a listing, newest first, each joined
// with the reviewer's display fields and all of its votes.
func (r *ReviewRepo) ListByListing(ctx context.Context, listingID string) ([]model.Review, error) {
	const q = `SELECT r.id, r.listing_id, r.user_id, r.rating, r.comment, r.created_at,
			p.id, p.first_name, p.last_name, p.avatar_url
		FROM reviews r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.listing_id = ?
		ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, fmt.Errorf("ReviewRepo.ListByListing: %w", err)
	}
	defer rows.Close()

	out := []model.Review{}
	index := map[string]int{}
	for rows.Next() {
		var (
			rev                      model.Review
			comment                  sql.NullString
			pid, first, last, avatar sql.NullString
		)
		if err := rows.Scan(&rev.ID, &rev.ListingID, &rev.UserID, &rev.Rating, &comment, &rev.CreatedAt,
			&pid, &first, &last, &avatar); err != nil {
			return nil, err
		}
		rev.Comment = nullString(comment)
		if pid.Valid {
			rev.User = &model.ProfileSummary{
				FirstName: nullString(first),
				LastName:  nullString(last),
				AvatarURL: nullString(avatar),
			}
		}
		rev.Votes = []model.Vote{}
		index[rev.ID] = len(out)
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	const vq = `SELECT v.review_id, v.user_id, v.vote_type
		FROM review_votes v
		JOIN reviews r ON r.id = v.review_id
		WHERE r.listing_id = ?`
	vrows, err := r.db.QueryContext(ctx, vq, listingID)
	if err != nil {
		return nil, fmt.Errorf("ReviewRepo.ListByListing: votes: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var (
			reviewID string
			v        model.Vote
		)
		if err := vrows.Scan(&reviewID, &v.UserID, &v.VoteType); err != nil {
			return nil, err
		}
		if i, ok := index[reviewID]; ok {
			out[i].Votes = append(out[i].Votes, v)
		}
	}
	return out, vrows.Err()
}

// UpsertVote sets voterID's vote on a review, replacing any previous one.
// An unknown review yields ErrNotFound.
func (r *ReviewRepo) UpsertVote(ctx context.Context, reviewID, voterID string, voteType int) error {
	const q = `INSERT INTO review_votes (review_id, user_id, vote_type) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE vote_type = VALUES(vote_type)`
	if _, err := r.db.ExecContext(ctx, q, reviewID, voterID, voteType); err != nil {
		if isMissingReference(err) {
			return ErrNotFound
		}
		return fmt.Errorf("ReviewRepo.UpsertVote: %w", err)
	}
	return nil
}

// DeleteVote removes voterID's vote on a review.  Removing an absent vote
// is not an error.
func (r *ReviewRepo) DeleteVote(ctx context.Context, reviewID, voterID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM review_votes WHERE review_id = ? AND user_id = ?`, reviewID, voterID); err != nil {
		return fmt.Errorf("ReviewRepo.DeleteVote: %w", err)
	}
	return nil
}
