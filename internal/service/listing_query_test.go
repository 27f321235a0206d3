package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-housing/internal/fallback"
	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/repository"
	"github.com/iliyamo/campus-housing/internal/service/servicetest"
)

func TestSearchUsesPrimary(t *testing.T) {
	st := servicetest.New()
	st.AddListing(model.Listing{Title: "A", Rent: 1000, Neighborhood: model.NeighborhoodDowntown})
	st.AddListing(model.Listing{Title: "B", Rent: 3000, Neighborhood: model.NeighborhoodDowntown})

	maxRent := 2000.0
	got, degraded := NewQueryService(st).Search(context.Background(), model.ListingFilter{MaxPrice: &maxRent})
	assert.False(t, degraded)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestSearchFallsBackToSnapshot(t *testing.T) {
	st := servicetest.New()
	st.SearchErr = servicetest.ErrDown

	collegetown := model.NeighborhoodCollegetown
	f := model.ListingFilter{Neighborhood: &collegetown}
	got, degraded := NewQueryService(st).Search(context.Background(), f)
	assert.True(t, degraded)

	snap, err := fallback.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, f.Apply(snap), got)
	require.NotEmpty(t, got)
	for _, l := range got {
		assert.True(t, f.Match(l))
	}
}

func TestSearchFallbackAndPrimaryAgree(t *testing.T) {
	snap, err := fallback.Snapshot()
	require.NoError(t, err)

	live := servicetest.New()
	for _, l := range snap {
		live.AddListing(l)
	}
	down := servicetest.New()
	down.SearchErr = servicetest.ErrDown

	minBeds := 2
	filters := []model.ListingFilter{
		{},
		{Class: model.ClassSublet},
		{Class: model.ClassOfficial, MinBedrooms: &minBeds},
	}
	for _, f := range filters {
		a, _ := NewQueryService(live).Search(context.Background(), f)
		b, _ := NewQueryService(down).Search(context.Background(), f)
		assert.ElementsMatch(t, ids(a), ids(b))
	}
}

func TestSearchSnapshotFailureReturnsEmpty(t *testing.T) {
	st := servicetest.New()
	st.SearchErr = servicetest.ErrDown
	svc := NewQueryService(st).WithSnapshot(func() ([]model.Listing, error) {
		return nil, errors.New("corrupt")
	})
	got, degraded := svc.Search(context.Background(), model.ListingFilter{})
	assert.True(t, degraded)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetListingWithHost(t *testing.T) {
	st := servicetest.New()
	owner := "host-1"
	first := "Ada"
	_, _ = st.UpdateNames(context.Background(), owner, &first, nil)
	id := st.AddListing(model.Listing{Title: "Room", UserID: &owner})

	svc := NewQueryService(st)
	l, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, l.Host)
	assert.Equal(t, "Ada", *l.Host.FirstName)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func ids(ls []model.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}
