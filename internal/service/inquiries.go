package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/queue"
)

type InquiryInput struct {
	ListingID string `json:"listing_id"`
	Message   string `json:"message"`
}

type InquiryService struct {
	inquiries InquiryStore
	listings  ListingStore
	events    EventPublisher
}

// NewInquiryService wires the inquiry store.  events may be nil, in which
// case no inquiry.created events are sent.
func NewInquiryService(inquiries InquiryStore, listings ListingStore, events EventPublisher) *InquiryService {
	return &InquiryService{inquiries: inquiries, listings: listings, events: events}
}

// Send stores a message from userID to the owner of a listing and announces
// it on the broker.  A publish failure does not fail the request.
func (s *InquiryService) Send(ctx context.Context, userID string, in InquiryInput) (*model.Inquiry, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	msg := strings.TrimSpace(in.Message)
	if in.ListingID == "" || msg == "" {
		return nil, invalid("missing required fields")
	}
	listing, err := s.listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	inq := &model.Inquiry{ListingID: in.ListingID, SenderID: userID, Message: msg}
	if err := s.inquiries.Create(ctx, inq); err != nil {
		return nil, err
	}
	if s.events != nil {
		ev := queue.InquiryCreatedEvent{
			InquiryID:    inq.ID,
			ListingID:    inq.ListingID,
			ListingTitle: listing.Title,
			SenderID:     userID,
			Message:      inq.Message,
			CreatedAt:    inq.CreatedAt.UTC().Format(time.RFC3339),
		}
		if listing.UserID != nil {
			ev.HostID = *listing.UserID
		}
		if err := s.events.PublishInquiryCreated(ctx, ev); err != nil {
			logger.Warnf("inquiry %s stored but event not published: %v", inq.ID, err)
		}
	}
	return inq, nil
}

// Inbox returns inquiries on listings owned by userID, newest first.
func (s *InquiryService) Inbox(ctx context.Context, userID string) ([]model.Inquiry, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.inquiries.ListForHost(ctx, userID)
}
