package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-housing/internal/model"
)

// InquiryRepo stores messages sent to listing owners.
type InquiryRepo struct{ db *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

// Create inserts an inquiry and fills in its id and created_at.  An unknown
// listing yields ErrNotFound.
func (r *InquiryRepo) Create(ctx context.Context, in *model.Inquiry) error {
	in.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO inquiries (id, listing_id, sender_id, message) VALUES (?,?,?,?)",
		in.ID, in.ListingID, in.SenderID, in.Message)
	if err != nil {
		if isMissingReference(err) {
			return ErrNotFound
		}
		return fmt.Errorf("InquiryRepo.Create: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, "SELECT created_at FROM inquiries WHERE id = ?", in.ID).
		Scan(&in.CreatedAt); err != nil {
		return fmt.Errorf("InquiryRepo.Create: reload: %w", err)
	}
	return nil
}

// ListForHost returns inquiries on listings owned by hostID, newest first,
// joined with the listing and the sender's profile.
func (r *InquiryRepo) ListForHost(ctx context.Context, hostID string) ([]model.Inquiry, error) {
	q := `SELECT i.id, i.listing_id, i.sender_id, i.message, i.created_at,
			` + listingColumns + `, ` + profileColumns + `
		FROM inquiries i
		JOIN listings l ON l.id = i.listing_id
		LEFT JOIN profiles p ON p.id = i.sender_id
		WHERE l.user_id = ?
		ORDER BY i.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hostID)
	if err != nil {
		return nil, fmt.Errorf("InquiryRepo.ListForHost: %w", err)
	}
	defer rows.Close()

	out := []model.Inquiry{}
	for rows.Next() {
		var (
			in model.Inquiry
			ls listingScan
			ps profileScan
		)
		dest := []any{&in.ID, &in.ListingID, &in.SenderID, &in.Message, &in.CreatedAt}
		dest = append(dest, ls.targets()...)
		dest = append(dest, ps.targets()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		l, err := ls.listing()
		if err != nil {
			return nil, err
		}
		in.Listing = &l
		in.Sender = ps.profile()
		out = append(out, in)
	}
	return out, rows.Err()
}
