package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/campus-housing/internal/model"
)

// listingColumns is the column list every listing query selects, in the
// order listingScan expects.  Queries alias the listings table as "l".
const listingColumns = `l.id, l.title, l.address, l.latitude, l.longitude, l.rent,
	l.bedrooms, l.bathrooms, l.neighborhood, l.lease_term, l.heating_type,
	l.nearest_tcat_route, l.elevation_warning, l.distance_from_campus_miles,
	l.is_official_listing, l.url, l.description, l.photos, l.user_id,
	l.created_at, l.updated_at, l.last_scraped_at`

// profileColumns selects a profile aliased as "p".  All columns may be NULL
// when the profile is LEFT JOINed.
const profileColumns = `p.id, p.first_name, p.last_name, p.avatar_url, p.updated_at`

// listingScan holds scan destinations for the nullable listing columns.
type listingScan struct {
	l            model.Listing
	neighborhood sql.NullString
	leaseTerm    sql.NullString
	heating      sql.NullString
	route        sql.NullString
	distance     sql.NullFloat64
	url          sql.NullString
	description  sql.NullString
	photos       []byte
	userID       sql.NullString
	lastScraped  sql.NullTime
}

func (s *listingScan) targets() []any {
	return []any{
		&s.l.ID, &s.l.Title, &s.l.Address, &s.l.Latitude, &s.l.Longitude, &s.l.Rent,
		&s.l.Bedrooms, &s.l.Bathrooms, &s.neighborhood, &s.leaseTerm, &s.heating,
		&s.route, &s.l.ElevationWarning, &s.distance,
		&s.l.IsOfficialListing, &s.url, &s.description, &s.photos, &s.userID,
		&s.l.CreatedAt, &s.l.UpdatedAt, &s.lastScraped,
	}
}

func (s *listingScan) listing() (model.Listing, error) {
	l := s.l
	l.Neighborhood = model.Neighborhood(s.neighborhood.String)
	l.LeaseTerm = model.LeaseTerm(s.leaseTerm.String)
	l.HeatingType = model.HeatingType(s.heating.String)
	l.NearestTCATRoute = nullString(s.route)
	if s.distance.Valid {
		d := s.distance.Float64
		l.DistanceFromCampusMiles = &d
	}
	l.URL = nullString(s.url)
	l.Description = nullString(s.description)
	l.UserID = nullString(s.userID)
	if s.lastScraped.Valid {
		t := s.lastScraped.Time
		l.LastScrapedAt = &t
	}
	l.Photos = []string{}
	if len(s.photos) > 0 {
		if err := json.Unmarshal(s.photos, &l.Photos); err != nil {
			return model.Listing{}, fmt.Errorf("decode photos of listing %s: %w", l.ID, err)
		}
	}
	return l, nil
}

// profileScan holds scan destinations for a possibly absent profile.
type profileScan struct {
	id        sql.NullString
	firstName sql.NullString
	lastName  sql.NullString
	avatarURL sql.NullString
	updatedAt sql.NullTime
}

func (s *profileScan) targets() []any {
	return []any{&s.id, &s.firstName, &s.lastName, &s.avatarURL, &s.updatedAt}
}

// profile returns nil when the joined profile row was absent.
func (s *profileScan) profile() *model.Profile {
	if !s.id.Valid {
		return nil
	}
	return &model.Profile{
		ID:        s.id.String,
		FirstName: nullString(s.firstName),
		LastName:  nullString(s.lastName),
		AvatarURL: nullString(s.avatarURL),
		UpdatedAt: s.updatedAt.Time,
	}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func stringOrNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func floatOrNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func enumOrNull[T ~string](v T) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(v), Valid: true}
}

func encodePhotos(photos []string) ([]byte, error) {
	if photos == nil {
		photos = []string{}
	}
	return json.Marshal(photos)
}
