package service

import (
	"context"
	"io"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/queue"
)

// ListingStore is the subset of the listing repository used here.
type ListingStore interface {
	Search(ctx context.Context, f model.ListingFilter) ([]model.Listing, error)
	GetWithHost(ctx context.Context, id string) (*model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Listing, error)
	Create(ctx context.Context, l *model.Listing) error
}

type FavoriteStore interface {
	Find(ctx context.Context, userID, listingID string) (string, bool, error)
	Insert(ctx context.Context, userID, listingID string) error
	Delete(ctx context.Context, id string) error
	ListListings(ctx context.Context, userID string) ([]model.Listing, error)
}

type ReviewStore interface {
	Upsert(ctx context.Context, rev *model.Review) error
	DeleteByIDAndOwner(ctx context.Context, id, userID string) error
	ListByListing(ctx context.Context, listingID string) ([]model.Review, error)
	UpsertVote(ctx context.Context, reviewID, voterID string, voteType int) error
	DeleteVote(ctx context.Context, reviewID, voterID string) error
}

type InquiryStore interface {
	Create(ctx context.Context, in *model.Inquiry) error
	ListForHost(ctx context.Context, hostID string) ([]model.Inquiry, error)
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, id string) (*model.Profile, error)
	UpdateNames(ctx context.Context, id string, first, last *string) (*model.Profile, error)
	SetAvatar(ctx context.Context, id, avatarURL string) (*model.Profile, error)
}

// PhotoStore keeps uploaded image bytes.
type PhotoStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	PublishInquiryCreated(ctx context.Context, ev queue.InquiryCreatedEvent) error
}
