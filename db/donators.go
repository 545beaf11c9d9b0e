package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Donators returns a page of donators sorted by date, newest first, and the
// total number of donators. Pages start at 1. A non positive page size
// returns every donator.
func (ms *MongoStorage) Donators(page, pageSize int64) ([]Donator, int64, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, 0, err
	}
	defer cancel()
	total, err := ms.donators.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip((page - 1) * pageSize).SetLimit(pageSize)
	}
	donators, err := findAll[Donator](ctx, ms.donators, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return donators, total, nil
}

// TopDonators returns the verified donators with the highest amounts. The
// list never holds more than TopDonatorsLimit donators.
func (ms *MongoStorage) TopDonators(limit int64) ([]Donator, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	if limit <= 0 || limit > TopDonatorsLimit {
		limit = TopDonatorsLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "amount", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	return findAll[Donator](ctx, ms.donators, bson.M{"isVerified": true}, opts)
}

func (ms *MongoStorage) Donator(id string) (*Donator, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[Donator](ctx, ms.donators, id)
}

// CreateDonator stores a new donation record and returns its ID.
func (ms *MongoStorage) CreateDonator(donator *Donator) (string, error) {
	if donator == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	donator.ID = primitive.NilObjectID
	donator.CreatedAt = time.Now()
	donator.UpdatedAt = donator.CreatedAt
	if donator.Date.IsZero() {
		donator.Date = donator.CreatedAt
	}
	oid, err := insertOne(ctx, ms.donators, donator)
	if err != nil {
		return "", err
	}
	donator.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) UpdateDonator(id string, patch *DonatorPatch) (*Donator, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[Donator](ctx, ms.donators, id, patch)
}

// VerifyDonatorByTransaction marks as verified the donator recorded with the
// given payment transaction ID and returns it.
func (ms *MongoStorage) VerifyDonatorByTransaction(transactionID string) (*Donator, error) {
	if transactionID == "" {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	update := bson.M{"$set": bson.M{
		"isVerified": true,
		"updatedAt":  time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	donator := &Donator{}
	err = ms.donators.FindOneAndUpdate(ctx, bson.M{"transactionId": transactionID}, update, opts).Decode(donator)
	if err != nil {
		return nil, storageError(err)
	}
	return donator, nil
}

func (ms *MongoStorage) DelDonator(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.donators, id)
}
