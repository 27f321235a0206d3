package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/campus-housing/internal/model"
)

// listingWhere translates a filter into SQL conjuncts.  It must stay in
// step with model.ListingFilter.Match.
func listingWhere(f model.ListingFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if f.Neighborhood != nil {
		where = append(where, "l.neighborhood = ?")
		args = append(args, string(*f.Neighborhood))
	}
	if f.MinPrice != nil {
		where = append(where, "l.rent >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "l.rent <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		where = append(where, "l.bedrooms >= ?")
		args = append(args, *f.MinBedrooms)
	}
	if f.Heating != nil {
		where = append(where, "l.heating_type = ?")
		args = append(args, string(*f.Heating))
	}
	switch f.Class {
	case model.ClassOfficial:
		where = append(where, "l.is_official_listing = TRUE")
	case model.ClassSublet:
		where = append(where, "l.is_official_listing = FALSE")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return cond, args
}

// Search returns every listing matching f.  No ordering is applied.
func (r *ListingRepo) Search(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	cond, args := listingWhere(f)
	q := `SELECT ` + listingColumns + ` FROM listings l WHERE ` + cond
	return r.queryListings(ctx, q, args...)
}
