package db

import (
	"context"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// initCollections binds the collection handles of the storage. The
// collections themselves, their validators and indexes are created by the
// migrations.
func (ms *MongoStorage) initCollections() {
	database := ms.DBClient.Database(ms.database)
	ms.users = database.Collection(usersCollection)
	ms.members = database.Collection(membersCollection)
	ms.volunteers = database.Collection(volunteersCollection)
	ms.campaigns = database.Collection(campaignsCollection)
	ms.certificates = database.Collection(certificatesCollection)
	ms.gallery = database.Collection(galleryCollection)
	ms.donators = database.Collection(donatorsCollection)
	ms.contacts = database.Collection(contactsCollection)
	ms.newsletter = database.Collection(newsletterCollection)
	ms.activities = database.Collection(activitiesCollection)
	ms.migrations = database.Collection(migrationsCollection)
}

// parseID converts the hex representation of a document id. Malformed ids
// can not match any document so they are reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// storageError translates the driver errors that have a meaning for the
// callers into the package errors.
func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrAlreadyExists
	default:
		return err
	}
}

// findAll runs the query and decodes every document into a slice of T. It
// always returns a non-nil slice when no error occurs.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "error", err)
		}
	}()
	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// findByID returns the document of the collection with the given hex id.
func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item := new(T)
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(item); err != nil {
		return nil, storageError(err)
	}
	return item, nil
}

// insertOne stores the document and returns the hex id assigned to it.
func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storageError(err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected id type %T", res.InsertedID)
	}
	return oid, nil
}

// updateByID applies the patch to the document with the given hex id and
// returns the updated document.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, patch any) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	updateDoc, err := dynamicUpdateDocument(patch, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	item := new(T)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDoc, opts).Decode(item); err != nil {
		return nil, storageError(err)
	}
	return item, nil
}

// deleteByID removes the document with the given hex id, ErrNotFound is
// returned when nothing was removed.
func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// dynamicUpdateDocument creates a BSON update document from a struct, including only non-zero fields.
// It uses reflection to iterate over the struct fields and create the update document.
// The struct fields must have a bson tag to be included in the update document.
// The _id field is skipped. Nil pointers are zero values, so patch structs
// made of pointers only update the fields that were provided.
func dynamicUpdateDocument(item interface{}, alwaysUpdateTags []string) (bson.M, error) {
	val := reflect.ValueOf(item)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input must be a valid struct")
	}
	update := bson.M{}
	typ := val.Type()
	// create a map for quick lookup
	alwaysUpdateMap := make(map[string]bool, len(alwaysUpdateTags))
	for _, tag := range alwaysUpdateTags {
		alwaysUpdateMap[tag] = true
	}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("bson")
		if tag == "" || tag == "-" || tag == "_id" {
			continue
		}
		// check if the field should always be updated or is not the zero value
		_, alwaysUpdate := alwaysUpdateMap[tag]
		if alwaysUpdate || !field.IsZero() {
			if field.Kind() == reflect.Ptr {
				update[tag] = field.Elem().Interface()
				continue
			}
			update[tag] = field.Interface()
		}
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	return bson.M{"$set": update}, nil
}
