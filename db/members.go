package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Members returns the members sorted by priority and then by insertion.
func (ms *MongoStorage) Members(filter MemberFilter) ([]Member, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	query := bson.M{}
	if filter.ActiveOnly {
		query["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: 1},
		{Key: "_id", Value: 1},
	})
	return findAll[Member](ctx, ms.members, query, opts)
}

// Member returns the member with the given ID.
func (ms *MongoStorage) Member(id string) (*Member, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[Member](ctx, ms.members, id)
}

// MemberByEmail returns the member registered with the given email.
func (ms *MongoStorage) MemberByEmail(email string) (*Member, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	member := &Member{}
	if err := ms.members.FindOne(ctx, bson.M{"email": email}).Decode(member); err != nil {
		return nil, storageError(err)
	}
	return member, nil
}

// CreateMember stores a new member and returns its ID. The email is unique
// across members, ErrAlreadyExists is returned otherwise.
func (ms *MongoStorage) CreateMember(member *Member) (string, error) {
	if member == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	member.ID = primitive.NilObjectID
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	oid, err := insertOne(ctx, ms.members, member)
	if err != nil {
		return "", err
	}
	member.ID = oid
	return oid.Hex(), nil
}

// UpdateMember applies the provided fields of the patch to the member with
// the given ID and returns the updated member.
func (ms *MongoStorage) UpdateMember(id string, patch *MemberPatch) (*Member, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[Member](ctx, ms.members, id, patch)
}

// DelMember removes the member with the given ID.
func (ms *MongoStorage) DelMember(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.members, id)
}
