package migrations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	AddMigration(2, "initial_indexes", upInitialIndexes, downInitialIndexes)
}

// uniqueEmailCollections are the collections where an email identifies a
// single document.
var uniqueEmailCollections = []string{"users", "members", "volunteers"}

// datedCollections are listed by date, newest first.
var datedCollections = []string{"campaigns", "gallery", "donators", "contacts"}

func upInitialIndexes(ctx context.Context, database *mongo.Database) error {
	// create an unique index for the 'email' field
	for _, name := range uniqueEmailCollections {
		if _, err := database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}}, // 1 for ascending order
			Options: options.Index().SetUnique(true),
		}); err != nil {
			return fmt.Errorf("failed to create index on email for %s: %w", name, err)
		}
	}

	for _, name := range datedCollections {
		if _, err := database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "date", Value: -1}},
		}); err != nil {
			return fmt.Errorf("failed to create index on date for %s: %w", name, err)
		}
	}

	if _, err := database.Collection("members").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "priority", Value: 1},
			{Key: "_id", Value: 1},
		},
	}); err != nil {
		return fmt.Errorf("failed to create index on priority for members: %w", err)
	}

	if _, err := database.Collection("donators").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// top donators listing
		{
			Keys: bson.D{
				{Key: "isVerified", Value: 1},
				{Key: "amount", Value: -1},
			},
		},
		// payment webhook lookups
		{
			Keys: bson.D{{Key: "transactionId", Value: 1}},
		},
	}); err != nil {
		return fmt.Errorf("failed to create many indexes for donators: %w", err)
	}

	// the activities collection holds a single document
	if _, err := database.Collection("activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "singleton", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create index on singleton for activities: %w", err)
	}

	return nil
}

func downInitialIndexes(ctx context.Context, database *mongo.Database) error {
	// Drop all indexes from all collections
	for _, collName := range []string{
		"users",
		"members",
		"volunteers",
		"campaigns",
		"gallery",
		"donators",
		"contacts",
		"activities",
	} {
		collection := database.Collection(collName)
		if _, err := collection.Indexes().DropAll(ctx); err != nil {
			return fmt.Errorf("failed to drop indexes for collection %s: %w", collName, err)
		}
	}

	return nil
}
