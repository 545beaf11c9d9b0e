package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Activities returns the activities counters. When no counters are stored
// yet they are created with zero values, so it never returns ErrNotFound.
// The upsert on the unique singleton key keeps a single document even under
// concurrent first reads.
func (ms *MongoStorage) Activities() (*Activities, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	filter := bson.M{"singleton": activitiesSingletonKey}
	update := bson.M{"$setOnInsert": bson.M{
		"happyPeople": int64(0),
		"offices":     int64(0),
		"staff":       int64(0),
		"volunteers":  int64(0),
		"updatedAt":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	activities := &Activities{}
	if err := ms.activities.FindOneAndUpdate(ctx, filter, update, opts).Decode(activities); err != nil {
		if err := storageError(err); err != ErrAlreadyExists {
			return nil, err
		}
		// a concurrent upsert won the race, the document exists now
		if err := ms.activities.FindOne(ctx, filter).Decode(activities); err != nil {
			return nil, storageError(err)
		}
	}
	return activities, nil
}

// SetActivities stores the given counters, creating the singleton document
// if it does not exist yet, and returns the stored counters.
func (ms *MongoStorage) SetActivities(activities *Activities) (*Activities, error) {
	if activities == nil {
		return nil, ErrInvalidData
	}
	if activities.HappyPeople < 0 || activities.Offices < 0 ||
		activities.Staff < 0 || activities.Volunteers < 0 {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	filter := bson.M{"singleton": activitiesSingletonKey}
	update := bson.M{"$set": bson.M{
		"happyPeople": activities.HappyPeople,
		"offices":     activities.Offices,
		"staff":       activities.Staff,
		"volunteers":  activities.Volunteers,
		"updatedAt":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	stored := &Activities{}
	if err := ms.activities.FindOneAndUpdate(ctx, filter, update, opts).Decode(stored); err != nil {
		if err := storageError(err); err != ErrAlreadyExists {
			return nil, err
		}
		// retry once, the concurrent upsert created the document
		if err := ms.activities.FindOneAndUpdate(ctx, filter, update, opts).Decode(stored); err != nil {
			return nil, storageError(err)
		}
	}
	return stored, nil
}
