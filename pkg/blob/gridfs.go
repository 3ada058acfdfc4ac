package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the blob-store collaborator: opaque bytes in, opaque file ID out.
// Only tutor registration uses it, for verification documents.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	Get(ctx context.Context, fileID string) ([]byte, error)
}

type gridfsStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore keeps verification documents in a GridFS bucket on the same
// deployment as the document store.
func NewGridFSStore(db *mongo.Database, bucketName string) (Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}
	return &gridfsStore{bucket: bucket}, nil
}

func (s *gridfsStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file %q is empty", name)
	}

	fileID := uuid.NewString()
	if err := s.bucket.UploadFromStreamWithID(fileID, name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", name, err)
	}
	return fileID, nil
}

func (s *gridfsStore) Get(ctx context.Context, fileID string) ([]byte, error) {
	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", fileID, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", fileID, err)
	}
	return data, nil
}
