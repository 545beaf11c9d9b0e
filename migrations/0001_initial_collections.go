package migrations

import (
	"context"
	"fmt"
	"slices"

	"github.com/helpinghands/ngo-backend/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	AddMigration(1, "initial_collections", upInitialCollections, downInitialCollections)
}

var collectionsToCreate = []string{
	"users",
	"members",
	"volunteers",
	"campaigns",
	"certificates",
	"gallery",
	"donators",
	"contacts",
	"newsletter",
	"activities",
	"migrations",
}

var collectionsValidators = map[string]bson.M{
	"users":      usersCollectionValidator,
	"members":    personCollectionValidator,
	"volunteers": personCollectionValidator,
	"donators":   donatorsCollectionValidator,
	"activities": activitiesCollectionValidator,
}

var usersCollectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "email", "password"},
		"properties": bson.M{
			"email": bson.M{
				"bsonType":    "string",
				"description": "must be an email and is required",
				"pattern":     internal.EmailRegexTemplate,
			},
			"password": bson.M{
				"bsonType":    "string",
				"description": "must be a string and is required",
				"minLength":   8,
			},
		},
	},
}

var personCollectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "email", "phone"},
		"properties": bson.M{
			"name": bson.M{
				"bsonType":    "string",
				"description": "must be a string and is required",
				"minLength":   1,
			},
			"email": bson.M{
				"bsonType":    "string",
				"description": "must be an email and is required",
				"pattern":     internal.EmailRegexTemplate,
			},
			"phone": bson.M{
				"bsonType":    "string",
				"description": "must be a string and is required",
				"minLength":   1,
			},
		},
	},
}

var donatorsCollectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "email", "amount", "transactionId"},
		"properties": bson.M{
			"amount": bson.M{
				"bsonType":         "double",
				"description":      "must be a positive number and is required",
				"exclusiveMinimum": true,
				"minimum":          0,
			},
			"transactionId": bson.M{
				"bsonType":    "string",
				"description": "must be a string and is required",
			},
		},
	},
}

var activitiesCollectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"singleton"},
		"properties": bson.M{
			"happyPeople": bson.M{"bsonType": "long", "minimum": 0},
			"offices":     bson.M{"bsonType": "long", "minimum": 0},
			"staff":       bson.M{"bsonType": "long", "minimum": 0},
			"volunteers":  bson.M{"bsonType": "long", "minimum": 0},
		},
	},
}

func upInitialCollections(ctx context.Context, database *mongo.Database) error {
	// get the current collections names to create only the missing ones
	currentCollections, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to get current collections: %w", err)
	}
	for _, name := range collectionsToCreate {
		validator, hasValidator := collectionsValidators[name]
		if slices.Contains(currentCollections, name) {
			// keep the validator of existing collections up to date
			if hasValidator {
				if err := database.RunCommand(ctx, bson.D{
					{Key: "collMod", Value: name},
					{Key: "validator", Value: validator},
				}).Err(); err != nil {
					return fmt.Errorf("failed to update collection validator: %w", err)
				}
			}
			continue
		}
		// if the collection has a validator create it with it
		opts := options.CreateCollection()
		if hasValidator {
			opts = opts.SetValidator(validator).SetValidationLevel("strict").SetValidationAction("error")
		}
		if err := database.CreateCollection(ctx, name, opts); err != nil {
			return err
		}
	}
	return nil
}

func downInitialCollections(context.Context, *mongo.Database) error {
	// Strictly speaking, this down func would Drop all created collections, but that's too risky/destructive.
	// So we do nothing here. (the up func is idempotent anyway)
	return nil
}
