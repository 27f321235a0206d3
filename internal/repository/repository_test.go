package repository

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-housing/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var (
	deleteReview = regexp.QuoteMeta("DELETE FROM reviews WHERE id = ? AND user_id = ?")
	reviewOwner  = regexp.QuoteMeta("SELECT user_id FROM reviews WHERE id = ?")
)

func TestDeleteReviewOwned(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(deleteReview).WithArgs("r1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewReviewRepo(db).DeleteByIDAndOwner(context.Background(), "r1", "u1"))
}

func TestDeleteReviewOwnedBySomeoneElse(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(deleteReview).WithArgs("r1", "u2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(reviewOwner).WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

	err := NewReviewRepo(db).DeleteByIDAndOwner(context.Background(), "r1", "u2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteReviewMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(deleteReview).WithArgs("nope", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(reviewOwner).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	err := NewReviewRepo(db).DeleteByIDAndOwner(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReviewRowsAffectedError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(deleteReview).WithArgs("r1", "u1").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver lost count")))

	err := NewReviewRepo(db).DeleteByIDAndOwner(context.Background(), "r1", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "driver lost count")
}

func TestUpsertReviewReloadsStoredRow(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews (id, listing_id, user_id, rating, comment)")).
		WithArgs(sqlmock.AnyArg(), "l1", "u1", 4, nil).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE listing_id = ? AND user_id = ?")).
		WithArgs("l1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "listing_id", "user_id", "rating", "comment", "created_at"}).
			AddRow("r-original", "l1", "u1", 4, nil, created))

	rev := &model.Review{ListingID: "l1", UserID: "u1", Rating: 4}
	require.NoError(t, NewReviewRepo(db).Upsert(context.Background(), rev))
	assert.Equal(t, "r-original", rev.ID)
	assert.Nil(t, rev.Comment)
	assert.Equal(t, created, rev.CreatedAt)
}

func TestUpsertVoteUnknownReview(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO review_votes")).
		WithArgs("r1", "u1", 1).
		WillReturnError(&mysql.MySQLError{Number: errNoReferencedRow, Message: "fk"})

	err := NewReviewRepo(db).UpsertVote(context.Background(), "r1", "u1", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReviewsAttachesVotes(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews r")).WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "listing_id", "user_id", "rating", "comment", "created_at",
			"pid", "first_name", "last_name", "avatar_url"}).
			AddRow("r2", "l1", "u2", 5, "great", now, "u2", "Ada", nil, nil).
			AddRow("r1", "l1", "u1", 3, nil, now.Add(-time.Hour), nil, nil, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM review_votes v")).WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "user_id", "vote_type"}).
			AddRow("r2", "u1", 1).
			AddRow("r2", "u3", -1).
			AddRow("r1", "u2", 1))

	got, err := NewReviewRepo(db).ListByListing(context.Background(), "l1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "Ada", *got[0].User.FirstName)
	assert.Len(t, got[0].Votes, 2)
	assert.Nil(t, got[1].User)
	assert.Equal(t, []model.Vote{{UserID: "u2", VoteType: 1}}, got[1].Votes)
}

func TestFavoriteInsertErrors(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO favorites (id, user_id, listing_id) VALUES (?,?,?)")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate", &mysql.MySQLError{Number: errDuplicateEntry}, ErrConflict},
		{"unknown listing", &mysql.MySQLError{Number: errNoReferencedRow}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectExec(insert).WithArgs(sqlmock.AnyArg(), "u1", "l1").WillReturnError(tc.err)
			err := NewFavoriteRepo(db).Insert(context.Background(), "u1", "l1")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("other", func(t *testing.T) {
		db, mock := newMock(t)
		boom := errors.New("connection reset")
		mock.ExpectExec(insert).WithArgs(sqlmock.AnyArg(), "u1", "l1").WillReturnError(boom)
		err := NewFavoriteRepo(db).Insert(context.Background(), "u1", "l1")
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "FavoriteRepo.Insert")
	})
}

func TestFavoriteFindAbsent(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM favorites")).WithArgs("u1", "l1").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := NewFavoriteRepo(db).Find(context.Background(), "u1", "l1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInquiryCreateUnknownListing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inquiries")).
		WithArgs(sqlmock.AnyArg(), "missing", "u1", "hi").
		WillReturnError(&mysql.MySQLError{Number: errNoReferencedRowLegacy})

	err := NewInquiryRepo(db).Create(context.Background(), &model.Inquiry{ListingID: "missing", SenderID: "u1", Message: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInquiryCreateFillsTimestamp(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inquiries")).
		WithArgs(sqlmock.AnyArg(), "l1", "u1", "Is it furnished?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM inquiries WHERE id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	in := &model.Inquiry{ListingID: "l1", SenderID: "u1", Message: "Is it furnished?"}
	require.NoError(t, NewInquiryRepo(db).Create(context.Background(), in))
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, created, in.CreatedAt)
}

func TestListingWhere(t *testing.T) {
	n := model.Neighborhood("Collegetown")
	minPrice, maxPrice := 800.0, 1500.0
	beds := 2
	f := model.ListingFilter{Neighborhood: &n, MinPrice: &minPrice, MaxPrice: &maxPrice, MinBedrooms: &beds, Class: model.ClassSublet}

	cond, args := listingWhere(f)
	assert.Equal(t, "l.neighborhood = ? AND l.rent >= ? AND l.rent <= ? AND l.bedrooms >= ? AND l.is_official_listing = FALSE", cond)
	assert.Equal(t, []any{"Collegetown", 800.0, 1500.0, 2}, args)

	cond, args = listingWhere(model.ListingFilter{})
	assert.Equal(t, "1=1", cond)
	assert.Empty(t, args)
}

func TestListingWhereUsesCanonicalEnums(t *testing.T) {
	f := model.ParseListingFilter(url.Values{"neighborhood": {"collegetown"}, "heating": {"gas"}})
	cond, args := listingWhere(f)
	assert.Equal(t, "l.neighborhood = ? AND l.heating_type = ?", cond)
	assert.Equal(t, []any{"Collegetown", "Gas"}, args)

	snapshotRow := model.Listing{Neighborhood: model.NeighborhoodCollegetown, HeatingType: model.HeatingGas}
	assert.True(t, f.Match(snapshotRow))
}

func TestPruneStale(t *testing.T) {
	db, mock := newMock(t)
	runAt := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM listings WHERE is_official_listing = TRUE AND last_scraped_at < ?")).
		WithArgs(runAt).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewListingRepo(db).PruneStale(context.Background(), runAt)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
