// Package servicetest provides an in-memory implementation of the service
// stores for tests.
package servicetest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/queue"
	"github.com/iliyamo/campus-housing/internal/repository"
)

// Store keeps every table in maps guarded by one mutex.  Timestamps come
// from an increasing clock so that "newest first" is deterministic.
type Store struct {
	mu        sync.Mutex
	clock     time.Time
	listings  map[string]model.Listing
	profiles  map[string]model.Profile
	favorites map[string]model.Favorite
	reviews   map[string]model.Review
	votes     map[[2]string]int
	inquiries map[string]model.Inquiry
	photos    map[string]photo

	// SearchErr, when set, is returned by Search.
	SearchErr error
	// Events records published inquiry events.
	Events []queue.InquiryCreatedEvent
	// PublishErr, when set, is returned by PublishInquiryCreated.
	PublishErr error
}

type photo struct {
	contentType string
	data        []byte
}

func New() *Store {
	return &Store{
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		listings:  map[string]model.Listing{},
		profiles:  map[string]model.Profile{},
		favorites: map[string]model.Favorite{},
		reviews:   map[string]model.Review{},
		votes:     map[[2]string]int{},
		inquiries: map[string]model.Inquiry{},
		photos:    map[string]photo{},
	}
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddListing stores l as is (assigning an id when empty) and returns the id.
func (s *Store) AddListing(l model.Listing) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := s.tick()
	l.CreatedAt, l.UpdatedAt = now, now
	if l.Photos == nil {
		l.Photos = []string{}
	}
	s.listings[l.ID] = l
	return l.ID
}

// ---- listings ----

func (s *Store) Search(_ context.Context, f model.ListingFilter) ([]model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}
	out := []model.Listing{}
	for _, l := range s.listings {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	sortListings(out)
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (s *Store) GetWithHost(ctx context.Context, id string) (*model.Listing, error) {
	l, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != nil {
		s.mu.Lock()
		if p, ok := s.profiles[*l.UserID]; ok {
			l.Host = &p
		}
		s.mu.Unlock()
	}
	return l, nil
}

func (s *Store) ListByOwner(_ context.Context, userID string) ([]model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Listing{}
	for _, l := range s.listings {
		if l.UserID != nil && *l.UserID == userID {
			out = append(out, l)
		}
	}
	sortListings(out)
	return out, nil
}

func (s *Store) Create(_ context.Context, l *model.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := s.tick()
	l.CreatedAt, l.UpdatedAt = now, now
	s.listings[l.ID] = *l
	return nil
}

func sortListings(ls []model.Listing) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].CreatedAt.After(ls[j].CreatedAt) })
}

// ---- favorites ----

// Favorites exposes the favorite store.  Its methods collide by name with
// the listing and inquiry stores, so it is a separate view.
func (s *Store) Favorites() *FavoriteView { return &FavoriteView{s} }

type FavoriteView struct{ s *Store }

func (v *FavoriteView) Find(_ context.Context, userID, listingID string) (string, bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, f := range v.s.favorites {
		if f.UserID == userID && f.ListingID == listingID {
			return f.ID, true, nil
		}
	}
	return "", false, nil
}

func (v *FavoriteView) Insert(_ context.Context, userID, listingID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.listings[listingID]; !ok {
		return repository.ErrNotFound
	}
	for _, f := range v.s.favorites {
		if f.UserID == userID && f.ListingID == listingID {
			return repository.ErrConflict
		}
	}
	id := uuid.NewString()
	v.s.favorites[id] = model.Favorite{ID: id, UserID: userID, ListingID: listingID, CreatedAt: v.s.tick()}
	return nil
}

func (v *FavoriteView) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	delete(v.s.favorites, id)
	return nil
}

func (v *FavoriteView) ListListings(_ context.Context, userID string) ([]model.Listing, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	favs := []model.Favorite{}
	for _, f := range v.s.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].CreatedAt.After(favs[j].CreatedAt) })
	out := []model.Listing{}
	for _, f := range favs {
		if l, ok := v.s.listings[f.ListingID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

// FavoriteCount returns the number of stored favorite rows.
func (s *Store) FavoriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

// ---- reviews ----

func (s *Store) Reviews() *ReviewView { return &ReviewView{s} }

type ReviewView struct{ s *Store }

func (v *ReviewView) Upsert(_ context.Context, rev *model.Review) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.listings[rev.ListingID]; !ok {
		return repository.ErrNotFound
	}
	for id, r := range v.s.reviews {
		if r.ListingID == rev.ListingID && r.UserID == rev.UserID {
			r.Rating, r.Comment = rev.Rating, rev.Comment
			v.s.reviews[id] = r
			*rev = r
			return nil
		}
	}
	rev.ID = uuid.NewString()
	rev.CreatedAt = v.s.tick()
	v.s.reviews[rev.ID] = *rev
	return nil
}

func (v *ReviewView) DeleteByIDAndOwner(_ context.Context, id, userID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	r, ok := v.s.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.UserID != userID {
		return repository.ErrForbidden
	}
	delete(v.s.reviews, id)
	for k := range v.s.votes {
		if k[0] == id {
			delete(v.s.votes, k)
		}
	}
	return nil
}

func (v *ReviewView) ListByListing(_ context.Context, listingID string) ([]model.Review, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := []model.Review{}
	for _, r := range v.s.reviews {
		if r.ListingID != listingID {
			continue
		}
		if p, ok := v.s.profiles[r.UserID]; ok {
			r.User = &model.ProfileSummary{FirstName: p.FirstName, LastName: p.LastName, AvatarURL: p.AvatarURL}
		}
		r.Votes = []model.Vote{}
		for k, vt := range v.s.votes {
			if k[0] == r.ID {
				r.Votes = append(r.Votes, model.Vote{UserID: k[1], VoteType: vt})
			}
		}
		sort.Slice(r.Votes, func(i, j int) bool { return r.Votes[i].UserID < r.Votes[j].UserID })
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (v *ReviewView) UpsertVote(_ context.Context, reviewID, voterID string, voteType int) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.reviews[reviewID]; !ok {
		return repository.ErrNotFound
	}
	v.s.votes[[2]string{reviewID, voterID}] = voteType
	return nil
}

func (v *ReviewView) DeleteVote(_ context.Context, reviewID, voterID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	delete(v.s.votes, [2]string{reviewID, voterID})
	return nil
}

// ReviewCount returns the number of stored review rows.
func (s *Store) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// ---- inquiries ----

func (s *Store) Inquiries() *InquiryView { return &InquiryView{s} }

type InquiryView struct{ s *Store }

func (v *InquiryView) Create(_ context.Context, in *model.Inquiry) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.listings[in.ListingID]; !ok {
		return repository.ErrNotFound
	}
	in.ID = uuid.NewString()
	in.CreatedAt = v.s.tick()
	v.s.inquiries[in.ID] = *in
	return nil
}

func (v *InquiryView) ListForHost(_ context.Context, hostID string) ([]model.Inquiry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := []model.Inquiry{}
	for _, in := range v.s.inquiries {
		l, ok := v.s.listings[in.ListingID]
		if !ok || l.UserID == nil || *l.UserID != hostID {
			continue
		}
		in.Listing = &l
		if p, ok := v.s.profiles[in.SenderID]; ok {
			in.Sender = &p
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// PublishInquiryCreated records ev.
func (s *Store) PublishInquiryCreated(_ context.Context, ev queue.InquiryCreatedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PublishErr != nil {
		return s.PublishErr
	}
	s.Events = append(s.Events, ev)
	return nil
}

// ---- profiles ----

func (s *Store) GetOrCreate(_ context.Context, id string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		p = model.Profile{ID: id, UpdatedAt: s.tick()}
		s.profiles[id] = p
	}
	return &p, nil
}

func (s *Store) UpdateNames(_ context.Context, id string, first, last *string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[id]
	p.ID, p.FirstName, p.LastName, p.UpdatedAt = id, first, last, s.tick()
	s.profiles[id] = p
	return &p, nil
}

func (s *Store) SetAvatar(_ context.Context, id, avatarURL string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[id]
	p.ID, p.AvatarURL, p.UpdatedAt = id, &avatarURL, s.tick()
	s.profiles[id] = p
	return &p, nil
}

// ---- photos ----

func (s *Store) Upload(_ context.Context, _ string, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.photos[id] = photo{contentType: contentType, data: data}
	return id, nil
}

func (s *Store) Open(_ context.Context, id string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok {
		return nil, "", repository.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(p.data)), p.contentType, nil
}

// ErrDown is a convenience error for simulating an unavailable store.
var ErrDown = errors.New("store unavailable")
