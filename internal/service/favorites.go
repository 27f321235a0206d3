package service

import (
	"context"
	"errors"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/repository"
)

type FavoriteService struct {
	favorites FavoriteStore
}

func NewFavoriteService(favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Toggle flips whether userID has favorited listingID and reports the new
// state.  Losing an insert race to a concurrent toggle counts as favorited.
func (s *FavoriteService) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthorized
	}
	if listingID == "" {
		return false, invalid("missing listing_id")
	}
	id, found, err := s.favorites.Find(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if found {
		if err := s.favorites.Delete(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	err = s.favorites.Insert(ctx, userID, listingID)
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		return false, err
	}
	return true, nil
}

// List returns the listings userID has favorited.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.favorites.ListListings(ctx, userID)
}
