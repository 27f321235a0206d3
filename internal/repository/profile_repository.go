package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/campus-housing/internal/model"
)

// ProfileRepo persists user profiles.  Profiles share their id with the
// authentication identity and are created on first access.
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetByID fetches a profile.  Returns ErrNotFound when absent.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles p WHERE p.id = ?`
	var s profileScan
	if err := r.db.QueryRowContext(ctx, q, id).Scan(s.targets()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.profile(), nil
}

// GetOrCreate returns the profile for id, inserting an empty one first if
// none exists yet.
func (r *ProfileRepo) GetOrCreate(ctx context.Context, id string) (*model.Profile, error) {
	if _, err := r.db.ExecContext(ctx, `INSERT IGNORE INTO profiles (id) VALUES (?)`, id); err != nil {
		return nil, fmt.Errorf("ProfileRepo.GetOrCreate: %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateNames sets first and last name, creating the profile if needed.
func (r *ProfileRepo) UpdateNames(ctx context.Context, id string, first, last *string) (*model.Profile, error) {
	const q = `INSERT INTO profiles (id, first_name, last_name) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE first_name = VALUES(first_name), last_name = VALUES(last_name),
		updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q, id, stringOrNull(first), stringOrNull(last)); err != nil {
		return nil, fmt.Errorf("ProfileRepo.UpdateNames: %w", err)
	}
	return r.GetByID(ctx, id)
}

// SetAvatar records a new avatar URL, creating the profile if needed.
func (r *ProfileRepo) SetAvatar(ctx context.Context, id, avatarURL string) (*model.Profile, error) {
	const q = `INSERT INTO profiles (id, avatar_url) VALUES (?,?)
		ON DUPLICATE KEY UPDATE avatar_url = VALUES(avatar_url), updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q, id, avatarURL); err != nil {
		return nil, fmt.Errorf("ProfileRepo.SetAvatar: %w", err)
	}
	return r.GetByID(ctx, id)
}
