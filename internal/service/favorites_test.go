package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/repository"
	"github.com/iliyamo/campus-housing/internal/service/servicetest"
)

func TestToggleTwiceLeavesNothing(t *testing.T) {
	st := servicetest.New()
	id := st.AddListing(model.Listing{Title: "A"})
	svc := NewFavoriteService(st.Favorites())
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "u", id)
	require.NoError(t, err)
	assert.True(t, on)

	list, err := svc.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	on, err = svc.Toggle(ctx, "u", id)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Zero(t, st.FavoriteCount())
}

type racingFavorites struct{ FavoriteStore }

func (racingFavorites) Find(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}

func (racingFavorites) Insert(context.Context, string, string) error {
	return repository.ErrConflict
}

func TestToggleInsertRaceCountsAsFavorited(t *testing.T) {
	svc := NewFavoriteService(racingFavorites{})
	on, err := svc.Toggle(context.Background(), "u", "l")
	require.NoError(t, err)
	assert.True(t, on)
}

func TestToggleValidation(t *testing.T) {
	svc := NewFavoriteService(servicetest.New().Favorites())
	_, err := svc.Toggle(context.Background(), "u", "")
	assert.True(t, IsValidation(err))
	_, err = svc.Toggle(context.Background(), "", "l")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Toggle(context.Background(), "u", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
