package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlobRepository is write-once chunked storage for image payloads, addressed
// by the store-assigned object id.
type BlobRepository interface {
	// Upload writes data under filename and returns the id of the new blob.
	// Nothing is left behind on failure.
	Upload(ctx context.Context, filename, contentType string, data []byte) (primitive.ObjectID, error)
	// Open returns a streaming reader for the blob with the given id.
	// Returns ErrBlobNotFound if the id does not resolve.
	Open(ctx context.Context, id primitive.ObjectID) (io.ReadCloser, error)
}

type gridfsBlobRepository struct {
	bucket *gridfs.Bucket
}

func NewBlobRepository(db *mongo.Database, bucketName string) (BlobRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}

	return &gridfsBlobRepository{bucket: bucket}, nil
}

func (r *gridfsBlobRepository) Upload(ctx context.Context, filename, contentType string, data []byte) (primitive.ObjectID, error) {
	// The v1 gridfs API is deadline-driven rather than context-driven.
	// Deadlines are set on the shared bucket, so a deadline from one caller
	// applies to concurrent operations too; callers here pass contexts
	// without deadlines.
	if deadline, ok := ctx.Deadline(); ok {
		if err := r.bucket.SetWriteDeadline(deadline); err != nil {
			return primitive.NilObjectID, fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	stream, err := r.bucket.OpenUploadStream(filename, uploadOpts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to open upload stream: %w", err)
	}

	if _, err := stream.Write(data); err != nil {
		if abortErr := stream.Abort(); abortErr != nil {
			return primitive.NilObjectID, fmt.Errorf("failed to write blob: %w (abort: %v)", err, abortErr)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to write blob: %w", err)
	}

	// Chunks are not visible to readers until Close commits the files document.
	if err := stream.Close(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to finish blob write: %w", err)
	}

	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected blob id type %T", stream.FileID)
	}

	return id, nil
}

func (r *gridfsBlobRepository) Open(ctx context.Context, id primitive.ObjectID) (io.ReadCloser, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := r.bucket.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	stream, err := r.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open download stream: %w", err)
	}

	return stream, nil
}
