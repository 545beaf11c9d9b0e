package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User method returns the user with the given ID. If the user doesn't exist, it
// returns a specific error. If other errors occur, it returns the error.
func (ms *MongoStorage) User(id string) (*User, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[User](ctx, ms.users, id)
}

// UserByEmail method returns the user with the given email. If the user doesn't
// exist, it returns a specific error. If other errors occur, it returns the
// error.
func (ms *MongoStorage) UserByEmail(email string) (*User, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()

	user := &User{}
	if err := ms.users.FindOne(ctx, bson.M{"email": email}).Decode(user); err != nil {
		return nil, storageError(err)
	}
	return user, nil
}

// Users returns every admin account sorted by creation.
func (ms *MongoStorage) Users() ([]User, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[User](ctx, ms.users, bson.M{}, opts)
}

// SetUser method creates or updates the user in the database. If the user
// has no ID it is created, otherwise the stored user with that ID is
// replaced by the provided fields. It returns the hex ID of the user.
func (ms *MongoStorage) SetUser(user *User) (string, error) {
	if user == nil || user.Email == "" || user.Password == "" {
		return "", ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	// create the user if it has no ID yet
	if user.ID.IsZero() {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now()
		}
		oid, err := insertOne(ctx, ms.users, user)
		if err != nil {
			return "", err
		}
		user.ID = oid
		return oid.Hex(), nil
	}
	// update the existing user
	res, err := ms.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	}})
	if err != nil {
		return "", storageError(err)
	}
	if res.MatchedCount == 0 {
		return "", ErrNotFound
	}
	return user.ID.Hex(), nil
}

// DelUser method deletes the user with the given ID from the database.
func (ms *MongoStorage) DelUser(id string) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.users, id)
}
