package model

import (
	"strings"
	"time"
)

// Neighborhood is one of the fixed areas a listing can be filed under.
type Neighborhood string

const (
	NeighborhoodCollegetown Neighborhood = "Collegetown"
	NeighborhoodFallCreek   Neighborhood = "Fall Creek"
	NeighborhoodDowntown    Neighborhood = "Downtown"
	NeighborhoodVarna       Neighborhood = "Varna"
	NeighborhoodLansing     Neighborhood = "Lansing"
)

var neighborhoods = []Neighborhood{
	NeighborhoodCollegetown, NeighborhoodFallCreek, NeighborhoodDowntown,
	NeighborhoodVarna, NeighborhoodLansing,
}

// Valid reports whether n is one of the declared neighborhoods.
func (n Neighborhood) Valid() bool {
	return canonical(neighborhoods, string(n)) == n
}

// ParseNeighborhood maps s, ignoring case and surrounding space, to a
// declared neighborhood.
func ParseNeighborhood(s string) (Neighborhood, bool) {
	n := canonical(neighborhoods, s)
	return n, n != ""
}

// LeaseTerm is the length of the lease offered by a listing.
type LeaseTerm string

const (
	LeaseTenMonth    LeaseTerm = "10-month"
	LeaseElevenMonth LeaseTerm = "11-month"
	LeaseTwelveMonth LeaseTerm = "12-month"
	LeaseSublet      LeaseTerm = "Sublet"
)

// HeatingType describes how a unit is heated.
type HeatingType string

const (
	HeatingGas               HeatingType = "Gas"
	HeatingElectricBaseboard HeatingType = "Electric Baseboard"
	HeatingSteam             HeatingType = "Steam"
	HeatingUnknown           HeatingType = "Unknown"
)

var heatingTypes = []HeatingType{
	HeatingGas, HeatingElectricBaseboard, HeatingSteam, HeatingUnknown,
}

// Valid reports whether h is one of the declared heating types.
func (h HeatingType) Valid() bool {
	return canonical(heatingTypes, string(h)) == h
}

// ParseHeatingType maps s, ignoring case and surrounding space, to a
// declared heating type.
func ParseHeatingType(s string) (HeatingType, bool) {
	h := canonical(heatingTypes, s)
	return h, h != ""
}

func canonical[T ~string](set []T, s string) T {
	s = strings.TrimSpace(s)
	for _, v := range set {
		if strings.EqualFold(string(v), s) {
			return v
		}
	}
	return ""
}

// Default coordinate used when a listing has no geocoded position.
const (
	DefaultLatitude  = 42.4440
	DefaultLongitude = -76.5019
)

// DefaultDistanceMiles is assumed for scraped listings with no distance.
const DefaultDistanceMiles = 0.5

// Listing mirrors a row of the `listings` table.  Official listings come
// from the scraper and are keyed by URL; sublets are posted by a user and
// carry that user's id in UserID.
//
// Fields:
//  ID                – primary key (UUID string).
//  Rent              – monthly rent in whole dollars.
//  IsOfficialListing – true for verified property-management listings.
//  URL               – source page of an official listing (nil for sublets).
//  Photos            – ordered photo URLs (JSON column).
//  UserID            – owner of a sublet (nil for official listings).
//  LastScrapedAt     – timestamp of the scrape run that last saw the row.
type Listing struct {
	ID                      string       `json:"id"`
	Title                   string       `json:"title"`
	Address                 string       `json:"address"`
	Latitude                float64      `json:"latitude"`
	Longitude               float64      `json:"longitude"`
	Rent                    int          `json:"rent"`
	Bedrooms                int          `json:"bedrooms"`
	Bathrooms               float64      `json:"bathrooms"`
	Neighborhood            Neighborhood `json:"neighborhood"`
	LeaseTerm               LeaseTerm    `json:"lease_term"`
	HeatingType             HeatingType  `json:"heating_type"`
	NearestTCATRoute        *string      `json:"nearest_tcat_route"`
	ElevationWarning        bool         `json:"elevation_warning"`
	DistanceFromCampusMiles *float64     `json:"distance_from_campus_miles"`
	IsOfficialListing       bool         `json:"is_official_listing"`
	URL                     *string      `json:"url"`
	Description             *string      `json:"description"`
	Photos                  []string     `json:"photos"`
	UserID                  *string      `json:"user_id"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
	LastScrapedAt           *time.Time   `json:"last_scraped_at,omitempty"`
	Host                    *Profile     `json:"host,omitempty"`
}

// IsOwnedBy reports whether the listing is a sublet posted by userID.
func (l Listing) IsOwnedBy(userID string) bool {
	return l.UserID != nil && *l.UserID == userID
}
