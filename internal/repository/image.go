package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"imagehub/internal/model"
)

// ErrNotFound is returned when no image document matches the given id.
var ErrNotFound = errors.New("image not found")

// ErrBlobNotFound is returned when an image document exists but its GridFS
// blob does not resolve.
var ErrBlobNotFound = errors.New("file not found")

type ImageRepository interface {
	Insert(ctx context.Context, image *model.Image) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Image, error)
	FindAll(ctx context.Context) ([]model.Image, error)
}

type imageRepository struct {
	images *mongo.Collection
}

func NewImageRepository(db *mongo.Database) ImageRepository {
	return &imageRepository{images: db.Collection("images")}
}

func (r *imageRepository) Insert(ctx context.Context, image *model.Image) error {
	res, err := r.images.InsertOne(ctx, image)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	image.ID = id

	return nil
}

func (r *imageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Image, error) {
	var image model.Image
	err := r.images.FindOne(ctx, bson.M{"_id": id}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &image, nil
}

// FindAll returns every image document, newest upload first.
func (r *imageRepository) FindAll(ctx context.Context) ([]model.Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.images.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer cursor.Close(ctx)

	images := []model.Image{}
	for cursor.Next(ctx) {
		var image model.Image
		if err := cursor.Decode(&image); err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		images = append(images, image)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return images, nil
}
