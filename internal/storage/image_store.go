package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ImagePrefix is prepended to every stored image reference.
const ImagePrefix = "posts/"

// ErrImageNotFound is returned by Open for an unknown reference.
var ErrImageNotFound = errors.New("image not found")

// ImageStore keeps uploaded post images and hands back reference paths.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, ref string) error
}

// GridFSImageStore implements ImageStore on a MongoDB GridFS bucket
type GridFSImageStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSImageStore creates the store on the "images" bucket of db
func NewGridFSImageStore(db *mongo.Database) (*GridFSImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &GridFSImageStore{bucket: bucket}, nil
}

// Save stores r under a fresh name keeping the extension of filename.
func (s *GridFSImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ref := NewImageRef(filename)

	opts := options.GridFSUpload().SetMetadata(map[string]string{"content_type": contentType})
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return "", err
		}
	}
	if _, err := s.bucket.UploadFromStream(ref, r, opts); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return ref, nil
}

// Open streams the image stored as ref together with its content type.
func (s *GridFSImageStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, "", err
		}
	}

	stream, err := s.bucket.OpenDownloadStreamByName(ref)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, "", ErrImageNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}

	contentType := "application/octet-stream"
	var meta struct {
		ContentType string `bson:"content_type"`
	}
	if raw := stream.GetFile().Metadata; raw != nil && bson.Unmarshal(raw, &meta) == nil && meta.ContentType != "" {
		contentType = meta.ContentType
	}
	return stream, contentType, nil
}

// Delete removes every file stored as ref.
func (s *GridFSImageStore) Delete(ctx context.Context, ref string) error {
	cursor, err := s.bucket.FindContext(ctx, bson.D{{Key: "filename", Value: ref}})
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	var files []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cursor.All(ctx, &files); err != nil {
		return fmt.Errorf("read image ids: %w", err)
	}
	if len(files) == 0 {
		return ErrImageNotFound
	}

	for _, f := range files {
		if err := s.bucket.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("delete image: %w", err)
		}
	}
	return nil
}

// NewImageRef builds a unique reference for an upload named filename.
func NewImageRef(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	return ImagePrefix + uuid.NewString() + ext
}
