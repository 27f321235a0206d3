package service

import (
	"context"
	"io"
	"strings"

	"github.com/iliyamo/campus-housing/internal/model"
)

type ProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ProfileService struct {
	profiles ProfileStore
	listings ListingStore
	photos   *PhotoService
}

func NewProfileService(profiles ProfileStore, listings ListingStore, photos *PhotoService) *ProfileService {
	return &ProfileService{profiles: profiles, listings: listings, photos: photos}
}

// Get returns userID's profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.profiles.GetOrCreate(ctx, userID)
}

// Update sets the display names.  Blank names are stored as NULL.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.profiles.UpdateNames(ctx, userID, blankToNil(in.FirstName), blankToNil(in.LastName))
}

// SetAvatar stores an uploaded image and points the profile at it.
func (s *ProfileService) SetAvatar(ctx context.Context, userID string, up Upload) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	url, err := s.photos.Save(ctx, up)
	if err != nil {
		return nil, err
	}
	return s.profiles.SetAvatar(ctx, userID, url)
}

// Listings returns the sublets posted by userID.
func (s *ProfileService) Listings(ctx context.Context, userID string) ([]model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.listings.ListByOwner(ctx, userID)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Upload is an image received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
