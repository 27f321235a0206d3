package service

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DefaultPhotoMaxBytes bounds uploads when no limit is configured.
const DefaultPhotoMaxBytes = 5 << 20

type PhotoService struct {
	store    PhotoStore
	maxBytes int64
	baseURL  string
}

// NewPhotoService returns a service that serves photos under
// baseURL + "/photos/<id>".
func NewPhotoService(store PhotoStore, maxBytes int64, baseURL string) *PhotoService {
	if maxBytes <= 0 {
		maxBytes = DefaultPhotoMaxBytes
	}
	return &PhotoService{store: store, maxBytes: maxBytes, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save validates and stores an image, returning its public URL.
func (s *PhotoService) Save(ctx context.Context, up Upload) (string, error) {
	if up.Body == nil {
		return "", invalid("file is required")
	}
	if !strings.HasPrefix(strings.ToLower(up.ContentType), "image/") {
		return "", invalid("only image uploads are accepted")
	}
	if up.Size > s.maxBytes {
		return "", invalid(fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	// Size comes from the client; cap the read as well.
	body := io.LimitReader(up.Body, s.maxBytes+1)
	id, err := s.store.Upload(ctx, up.Filename, up.ContentType, &countingReader{r: body, max: s.maxBytes})
	if err != nil {
		if IsValidation(err) {
			return "", err
		}
		return "", fmt.Errorf("PhotoService.Save: %w", err)
	}
	return s.baseURL + "/photos/" + id, nil
}

// Open returns the stored image and its content type.
func (s *PhotoService) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if id == "" {
		return nil, "", invalid("photo id is required")
	}
	return s.store.Open(ctx, id)
}

type countingReader struct {
	r   io.Reader
	n   int64
	max int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.max {
		return n, invalid(fmt.Sprintf("file exceeds %d bytes", c.max))
	}
	return n, err
}
