package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is the metadata document for one stored image. The payload itself
// lives in GridFS under GridFSID; exactly one Image references a given blob.
// Documents are immutable once inserted.
type Image struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Filename     string             `bson:"filename"`
	OriginalName string             `bson:"originalName"`
	ContentType  string             `bson:"contentType"`
	Size         int64              `bson:"size"`
	GridFSID     primitive.ObjectID `bson:"gridfsId"`
	UploadedAt   time.Time          `bson:"uploadedAt"`
	Shop         string             `bson:"shop"`
}

// ImageView is the public projection returned by the listing API.
type ImageView struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
	URL          string    `json:"url"`
	Shop         string    `json:"shop"`
}
