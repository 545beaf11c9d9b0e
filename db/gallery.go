package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryImages returns the gallery images sorted by date, newest first. A
// positive limit caps the number of images returned.
func (ms *MongoStorage) GalleryImages(limit int64) ([]GalleryImage, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[GalleryImage](ctx, ms.gallery, bson.M{}, opts)
}

func (ms *MongoStorage) GalleryImage(id string) (*GalleryImage, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[GalleryImage](ctx, ms.gallery, id)
}

func (ms *MongoStorage) CreateGalleryImage(image *GalleryImage) (string, error) {
	if image == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	image.ID = primitive.NilObjectID
	image.CreatedAt = time.Now()
	image.UpdatedAt = image.CreatedAt
	if image.Date.IsZero() {
		image.Date = image.CreatedAt
	}
	oid, err := insertOne(ctx, ms.gallery, image)
	if err != nil {
		return "", err
	}
	image.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) UpdateGalleryImage(id string, patch *GalleryImagePatch) (*GalleryImage, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[GalleryImage](ctx, ms.gallery, id, patch)
}

func (ms *MongoStorage) DelGalleryImage(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.gallery, id)
}
