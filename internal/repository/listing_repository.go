// Package repository contains data access logic separated from HTTP handlers.
// This file defines the listing repository: filtered reads, sublet
// inserts and the URL-keyed upsert used by the scrape importer.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-housing/internal/model"
)

// ListingRepo encapsulates all database queries related to listings.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the provided DB handle.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}


func (r *ListingRepo) queryListings(ctx context.Context, q string, args ...any) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a listing without joins.  Returns ErrNotFound when absent.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = ?`
	var s listingScan
	if err := r.db.QueryRowContext(ctx, q, id).Scan(s.targets()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l, err := s.listing()
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetWithHost fetches a listing joined with the profile of its owner.
// Official listings have no owner and come back with a nil Host.
func (r *ListingRepo) GetWithHost(ctx context.Context, id string) (*model.Listing, error) {
	q := `SELECT ` + listingColumns + `, ` + profileColumns + `
		FROM listings l
		LEFT JOIN profiles p ON p.id = l.user_id
		WHERE l.id = ?`
	var (
		ls listingScan
		ps profileScan
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(append(ls.targets(), ps.targets()...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l, err := ls.listing()
	if err != nil {
		return nil, err
	}
	l.Host = ps.profile()
	return &l, nil
}

// ListByOwner returns the sublets posted by userID, newest first.
func (r *ListingRepo) ListByOwner(ctx context.Context, userID string) ([]model.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings l WHERE l.user_id = ? ORDER BY l.created_at DESC`
	return r.queryListings(ctx, q, userID)
}

// Create inserts a new listing.  An empty ID is replaced with a fresh UUID.
// After the insert the row is read back so that callers receive the
// database-assigned timestamps.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	photos, err := encodePhotos(l.Photos)
	if err != nil {
		return err
	}
	const q = `INSERT INTO listings
		(id, title, address, latitude, longitude, rent, bedrooms, bathrooms,
		 neighborhood, lease_term, heating_type, nearest_tcat_route, elevation_warning,
		 distance_from_campus_miles, is_official_listing, url, description, photos, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q,
		l.ID, l.Title, l.Address, l.Latitude, l.Longitude, l.Rent, l.Bedrooms, l.Bathrooms,
		enumOrNull(l.Neighborhood), enumOrNull(l.LeaseTerm), enumOrNull(l.HeatingType),
		stringOrNull(l.NearestTCATRoute), l.ElevationWarning,
		floatOrNull(l.DistanceFromCampusMiles), l.IsOfficialListing, stringOrNull(l.URL),
		stringOrNull(l.Description), photos, stringOrNull(l.UserID),
	)
	if err != nil {
		if isMissingReference(err) {
			return ErrNotFound
		}
		return fmt.Errorf("ListingRepo.Create: %w", err)
	}
	stored, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("ListingRepo.Create: reload: %w", err)
	}
	*l = *stored
	return nil
}

// UpsertOfficial inserts or refreshes a scraped listing keyed by its URL.
// Both updated_at and last_scraped_at are set to runAt so that a later
// PruneStale(runAt) keeps exactly the rows seen in this run.
func (r *ListingRepo) UpsertOfficial(ctx context.Context, l *model.Listing, runAt time.Time) error {
	if l.URL == nil || *l.URL == "" {
		return errors.New("ListingRepo.UpsertOfficial: url is required")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	photos, err := encodePhotos(l.Photos)
	if err != nil {
		return err
	}
	const q = `INSERT INTO listings
		(id, title, address, latitude, longitude, rent, bedrooms, bathrooms,
		 neighborhood, lease_term, heating_type, nearest_tcat_route, elevation_warning,
		 distance_from_campus_miles, is_official_listing, url, description, photos,
		 last_scraped_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,TRUE,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
		 title = VALUES(title), address = VALUES(address),
		 latitude = VALUES(latitude), longitude = VALUES(longitude),
		 rent = VALUES(rent), bedrooms = VALUES(bedrooms), bathrooms = VALUES(bathrooms),
		 neighborhood = VALUES(neighborhood), lease_term = VALUES(lease_term),
		 heating_type = VALUES(heating_type), nearest_tcat_route = VALUES(nearest_tcat_route),
		 elevation_warning = VALUES(elevation_warning),
		 distance_from_campus_miles = VALUES(distance_from_campus_miles),
		 is_official_listing = TRUE, description = VALUES(description),
		 photos = VALUES(photos), last_scraped_at = VALUES(last_scraped_at),
		 updated_at = VALUES(updated_at)`
	_, err = r.db.ExecContext(ctx, q,
		l.ID, l.Title, l.Address, l.Latitude, l.Longitude, l.Rent, l.Bedrooms, l.Bathrooms,
		enumOrNull(l.Neighborhood), enumOrNull(l.LeaseTerm), enumOrNull(l.HeatingType),
		stringOrNull(l.NearestTCATRoute), l.ElevationWarning,
		floatOrNull(l.DistanceFromCampusMiles), *l.URL, stringOrNull(l.Description), photos,
		runAt, runAt,
	)
	if err != nil {
		return fmt.Errorf("ListingRepo.UpsertOfficial: %w", err)
	}
	return nil
}

// PruneStale deletes official listings whose last scrape predates runAt
// and returns how many rows were removed.  Sublets are never touched.
func (r *ListingRepo) PruneStale(ctx context.Context, runAt time.Time) (int64, error) {
	const q = `DELETE FROM listings WHERE is_official_listing = TRUE AND last_scraped_at < ?`
	res, err := r.db.ExecContext(ctx, q, runAt)
	if err != nil {
		return 0, fmt.Errorf("ListingRepo.PruneStale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
