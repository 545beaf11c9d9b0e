package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Contacts returns the contact form submissions, newest first.
func (ms *MongoStorage) Contacts() ([]ContactSubmission, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})
	return findAll[ContactSubmission](ctx, ms.contacts, bson.M{}, opts)
}

func (ms *MongoStorage) Contact(id string) (*ContactSubmission, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[ContactSubmission](ctx, ms.contacts, id)
}

func (ms *MongoStorage) CreateContact(contact *ContactSubmission) (string, error) {
	if contact == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	contact.ID = primitive.NilObjectID
	if contact.Date.IsZero() {
		contact.Date = time.Now()
	}
	oid, err := insertOne(ctx, ms.contacts, contact)
	if err != nil {
		return "", err
	}
	contact.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) DelContact(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.contacts, id)
}
