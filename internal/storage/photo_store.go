package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/campus-housing/internal/repository"
)

const (
	bucketName          = "photos"
	metaContentType     = "content_type"
	fallbackContentType = "application/octet-stream"
)

// PhotoStore writes images to a GridFS bucket named "photos".  Ids are the
// hex form of the GridFS ObjectID.
type PhotoStore struct {
	db *mongo.Database
}

func NewPhotoStore(client *mongo.Client, dbName string) *PhotoStore {
	return &PhotoStore{db: client.Database(dbName)}
}

func (s *PhotoStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = b.SetWriteDeadline(dl)
		_ = b.SetReadDeadline(dl)
	}
	return b, nil
}

// Upload streams r into GridFS, recording the content type as metadata.
func (s *PhotoStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return "", err
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: metaContentType, Value: contentType}})
	stream, err := b.OpenUploadStream(filename, opts)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort()
		return "", err
	}
	if err := stream.Close(); err != nil {
		return "", err
	}
	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected gridfs id %T", stream.FileID)
	}
	return id.Hex(), nil
}

// Open returns the stored bytes and their content type.  An unknown or
// malformed id yields repository.ErrNotFound.
func (s *PhotoStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", repository.ErrNotFound
	}
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, "", err
	}
	stream, err := b.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", repository.ErrNotFound
		}
		return nil, "", err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, "", err
	}
	return io.NopCloser(bytes.NewReader(data)), contentTypeOf(stream.GetFile().Metadata), nil
}

func contentTypeOf(meta bson.Raw) string {
	if len(meta) == 0 {
		return fallbackContentType
	}
	if v, ok := meta.Lookup(metaContentType).StringValueOK(); ok && v != "" {
		return v
	}
	return fallbackContentType
}
