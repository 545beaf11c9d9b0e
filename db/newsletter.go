package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscriptions returns the newsletter subscriptions, the last one first.
// The same email may be subscribed more than once.
func (ms *MongoStorage) Subscriptions() ([]NewsletterSubscription, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return findAll[NewsletterSubscription](ctx, ms.newsletter, bson.M{}, opts)
}

func (ms *MongoStorage) CreateSubscription(subscription *NewsletterSubscription) (string, error) {
	if subscription == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	subscription.ID = primitive.NilObjectID
	subscription.CreatedAt = time.Now()
	oid, err := insertOne(ctx, ms.newsletter, subscription)
	if err != nil {
		return "", err
	}
	subscription.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) DelSubscription(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.newsletter, id)
}
