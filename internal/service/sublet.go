package service

import (
	"context"
	"strings"

	"github.com/iliyamo/campus-housing/internal/model"
)

// SubletInput is the body of a sublet post.  Class, lease term, owner and
// url are not accepted from the client.
type SubletInput struct {
	Title                   string             `json:"title"`
	Address                 string             `json:"address"`
	Latitude                *float64           `json:"latitude"`
	Longitude               *float64           `json:"longitude"`
	Rent                    int                `json:"rent"`
	Bedrooms                int                `json:"bedrooms"`
	Bathrooms               float64            `json:"bathrooms"`
	Neighborhood            model.Neighborhood `json:"neighborhood"`
	HeatingType             model.HeatingType  `json:"heating_type"`
	NearestTCATRoute        *string            `json:"nearest_tcat_route"`
	ElevationWarning        bool               `json:"elevation_warning"`
	DistanceFromCampusMiles *float64           `json:"distance_from_campus_miles"`
	Description             *string            `json:"description"`
	Photos                  []string           `json:"photos"`
}

type SubletService struct {
	listings ListingStore
}

func NewSubletService(listings ListingStore) *SubletService {
	return &SubletService{listings: listings}
}

// Post stores a sublet owned by userID and returns the stored row.
func (s *SubletService) Post(ctx context.Context, userID string, in SubletInput) (*model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	l, err := BuildSublet(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// BuildSublet validates in and turns it into a listing owned by userID.
// Title, address and a positive rent are required; neighborhood and
// heating_type must name declared values when given.
func BuildSublet(userID string, in SubletInput) (*model.Listing, error) {
	title := strings.TrimSpace(in.Title)
	address := strings.TrimSpace(in.Address)
	if title == "" || address == "" || in.Rent <= 0 {
		return nil, invalid("missing required fields")
	}
	neighborhood := in.Neighborhood
	if neighborhood != "" {
		n, ok := model.ParseNeighborhood(string(neighborhood))
		if !ok {
			return nil, invalid("unknown neighborhood")
		}
		neighborhood = n
	}
	heating := model.HeatingUnknown
	if in.HeatingType != "" {
		h, ok := model.ParseHeatingType(string(in.HeatingType))
		if !ok {
			return nil, invalid("unknown heating_type")
		}
		heating = h
	}
	owner := userID
	l := &model.Listing{
		Title:                   title,
		Address:                 address,
		Latitude:                model.DefaultLatitude,
		Longitude:               model.DefaultLongitude,
		Rent:                    in.Rent,
		Bedrooms:                in.Bedrooms,
		Bathrooms:               in.Bathrooms,
		Neighborhood:            neighborhood,
		LeaseTerm:               model.LeaseSublet,
		HeatingType:             heating,
		NearestTCATRoute:        in.NearestTCATRoute,
		ElevationWarning:        in.ElevationWarning,
		DistanceFromCampusMiles: in.DistanceFromCampusMiles,
		IsOfficialListing:       false,
		Description:             in.Description,
		Photos:                  in.Photos,
		UserID:                  &owner,
	}
	if in.Latitude != nil {
		l.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = *in.Longitude
	}
	if l.Photos == nil {
		l.Photos = []string{}
	}
	return l, nil
}
