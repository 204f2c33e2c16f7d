package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"imagehub/internal/config"
	"imagehub/internal/model"
	"imagehub/internal/repository"
)

type imageService struct {
	images repository.ImageRepository
	blobs  repository.BlobRepository
	host   string
	shop   string
	log    *zap.Logger
}

func NewImageService(images repository.ImageRepository, blobs repository.BlobRepository, cfg *config.Config, log *zap.Logger) ImageService {
	return &imageService{
		images: images,
		blobs:  blobs,
		host:   cfg.Host,
		shop:   cfg.ShopDomain,
		log:    log,
	}
}

// Upload writes the payload to blob storage and, only once the write has been
// confirmed, inserts the metadata record pointing at it. The record acts as
// the commit marker for the blob: a failure between the two phases can orphan
// a blob but can never produce a record without a fully written blob.
func (s *imageService) Upload(ctx context.Context, originalName, contentType string, data []byte) (*model.Image, error) {
	now := time.Now()

	// Timestamp-qualified storage name so concurrent uploads of files with
	// the same name do not collide. Two uploads in the same millisecond with
	// the same name still can; the record and blob stay distinct either way
	// because ids, not filenames, are the keys.
	filename := fmt.Sprintf("%d-%s", now.UnixMilli(), originalName)

	blobID, err := s.blobs.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	image := &model.Image{
		Filename:     filename,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         int64(len(data)),
		GridFSID:     blobID,
		UploadedAt:   now,
		Shop:         s.shop,
	}

	if err := s.images.Insert(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	s.log.Info("image uploaded",
		zap.String("id", image.ID.Hex()),
		zap.String("filename", filename),
		zap.Int64("size", image.Size))

	return image, nil
}

// Get resolves the record for id and opens a download stream for its blob.
// The caller owns the returned stream and must close it.
func (s *imageService) Get(ctx context.Context, id string) (*model.Image, io.ReadCloser, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, repository.ErrNotFound
	}

	image, err := s.images.FindByID(ctx, objectID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.blobs.Open(ctx, image.GridFSID)
	if err != nil {
		return nil, nil, err
	}

	return image, stream, nil
}

func (s *imageService) List(ctx context.Context) ([]model.ImageView, error) {
	images, err := s.images.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.ImageView, 0, len(images))
	for _, image := range images {
		views = append(views, model.ImageView{
			ID:           image.ID.Hex(),
			Filename:     image.Filename,
			OriginalName: image.OriginalName,
			ContentType:  image.ContentType,
			Size:         image.Size,
			UploadedAt:   image.UploadedAt,
			URL:          fmt.Sprintf("%s/api/images/%s", s.host, image.ID.Hex()),
			Shop:         image.Shop,
		})
	}

	return views, nil
}
