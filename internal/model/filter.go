package model

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ListingClass selects official listings, sublets, or both (empty).
type ListingClass string

const (
	ClassAny      ListingClass = ""
	ClassOfficial ListingClass = "official"
	ClassSublet   ListingClass = "sublet"
)

// ListingFilter is a conjunction of optional criteria.  A nil field (or
// ClassAny) imposes no constraint.  The same filter drives the SQL query
// and the in-memory fallback, so Match is the reference semantics for both.
type ListingFilter struct {
	Neighborhood *Neighborhood
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	Heating      *HeatingType
	Class        ListingClass
}

// ParseListingFilter reads the public query parameters of GET /listings.
// Numeric values that fail to parse are skipped rather than rejected.
func ParseListingFilter(q url.Values) ListingFilter {
	var f ListingFilter
	if v := strings.TrimSpace(q.Get("neighborhood")); v != "" {
		n, ok := ParseNeighborhood(v)
		if !ok {
			// Unknown areas match nothing in either tier.
			n = Neighborhood(v)
		}
		f.Neighborhood = &n
	}
	if v, ok := parseFloat(q.Get("minPrice")); ok {
		f.MinPrice = &v
	}
	if v, ok := parseFloat(q.Get("maxPrice")); ok {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("bedrooms"))); err == nil {
		f.MinBedrooms = &v
	}
	if v := strings.TrimSpace(q.Get("heating")); v != "" {
		h, ok := ParseHeatingType(v)
		if !ok {
			h = HeatingType(v)
		}
		f.Heating = &h
	}
	switch ListingClass(strings.ToLower(strings.TrimSpace(q.Get("type")))) {
	case ClassOfficial:
		f.Class = ClassOfficial
	case ClassSublet:
		f.Class = ClassSublet
	}
	return f
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Match reports whether l satisfies every criterion of the filter.
func (f ListingFilter) Match(l Listing) bool {
	if f.Neighborhood != nil && l.Neighborhood != *f.Neighborhood {
		return false
	}
	if f.MinPrice != nil && float64(l.Rent) < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && float64(l.Rent) > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && l.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.Heating != nil && l.HeatingType != *f.Heating {
		return false
	}
	switch f.Class {
	case ClassOfficial:
		return l.IsOfficialListing
	case ClassSublet:
		return !l.IsOfficialListing
	}
	return true
}

// Apply returns the listings that match f.  The input is not modified.
func (f ListingFilter) Apply(in []Listing) []Listing {
	out := make([]Listing, 0, len(in))
	for _, l := range in {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}
