package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-housing/internal/model"
)

// FavoriteRepo stores (user, listing) favorite pairs.  The table has a
// unique key on (user_id, listing_id).
type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Find returns the id of the favorite row for the pair, if any.
func (r *FavoriteRepo) Find(ctx context.Context, userID, listingID string) (string, bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM favorites WHERE user_id = ? AND listing_id = ? LIMIT 1",
		userID, listingID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("FavoriteRepo.Find: %w", err)
	}
	return id, true, nil
}

// Insert adds the pair.  A duplicate pair yields ErrConflict and an
// unknown listing yields ErrNotFound.
func (r *FavoriteRepo) Insert(ctx context.Context, userID, listingID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, listing_id) VALUES (?,?,?)",
		uuid.NewString(), userID, listingID)
	switch {
	case err == nil:
		return nil
	case isDuplicateKey(err):
		return ErrConflict
	case isMissingReference(err):
		return ErrNotFound
	}
	return fmt.Errorf("FavoriteRepo.Insert: %w", err)
}

// Delete removes a favorite row by id.
func (r *FavoriteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = ?", id); err != nil {
		return fmt.Errorf("FavoriteRepo.Delete: %w", err)
	}
	return nil
}

// ListListings returns the listings favorited by userID.
func (r *FavoriteRepo) ListListings(ctx context.Context, userID string) ([]model.Listing, error) {
	q := `SELECT ` + listingColumns + `
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("FavoriteRepo.ListListings: %w", err)
	}
	defer rows.Close()

	out := []model.Listing{}
	for rows.Next() {
		var s listingScan
		if err := rows.Scan(s.targets()...); err != nil {
			return nil, err
		}
		l, err := s.listing()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
