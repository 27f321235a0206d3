package service

import (
	"context"

	"github.com/iliyamo/campus-housing/internal/fallback"
	"github.com/iliyamo/campus-housing/internal/model"
)

// ListingSearcher is the primary tier of a listing search.
type ListingSearcher interface {
	Search(ctx context.Context, f model.ListingFilter) ([]model.Listing, error)
	GetWithHost(ctx context.Context, id string) (*model.Listing, error)
}

// QueryService answers listing searches from the store and falls back to
// the bundled snapshot when the store fails.
type QueryService struct {
	primary  ListingSearcher
	snapshot func() ([]model.Listing, error)
}

func NewQueryService(primary ListingSearcher) *QueryService {
	return &QueryService{primary: primary, snapshot: fallback.Snapshot}
}

// WithSnapshot replaces the secondary tier.
func (s *QueryService) WithSnapshot(fn func() ([]model.Listing, error)) *QueryService {
	s.snapshot = fn
	return s
}

// Search returns the listings matching f.  A store failure is logged and
// answered from the snapshot filtered by the same predicate, so Search
// never reports an error.  The flag is true when the answer came from the
// snapshot.
func (s *QueryService) Search(ctx context.Context, f model.ListingFilter) ([]model.Listing, bool) {
	if s.primary != nil {
		out, err := s.primary.Search(ctx, f)
		if err == nil {
			if out == nil {
				out = []model.Listing{}
			}
			return out, false
		}
		logger.Warnf("listing search failed, serving fallback snapshot: %v", err)
	}
	snap, err := s.snapshot()
	if err != nil {
		logger.Errorf("fallback snapshot unavailable: %v", err)
		return []model.Listing{}, true
	}
	return f.Apply(snap), true
}

// Get returns one listing joined with its host profile.  There is no
// fallback here: a store failure is returned to the caller.
func (s *QueryService) Get(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, invalid("listing id is required")
	}
	return s.primary.GetWithHost(ctx, id)
}
