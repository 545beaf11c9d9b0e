package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Volunteers returns the volunteers sorted by insertion. The public filter
// selects the active volunteers that are shown in the list.
func (ms *MongoStorage) Volunteers(filter VolunteerFilter) ([]Volunteer, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	query := bson.M{}
	if filter.Public {
		query["isActive"] = true
		query["showInList"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[Volunteer](ctx, ms.volunteers, query, opts)
}

func (ms *MongoStorage) Volunteer(id string) (*Volunteer, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[Volunteer](ctx, ms.volunteers, id)
}

func (ms *MongoStorage) VolunteerByEmail(email string) (*Volunteer, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	volunteer := &Volunteer{}
	if err := ms.volunteers.FindOne(ctx, bson.M{"email": email}).Decode(volunteer); err != nil {
		return nil, storageError(err)
	}
	return volunteer, nil
}

// CreateVolunteer stores a new volunteer and returns its ID. The email is
// unique across volunteers.
func (ms *MongoStorage) CreateVolunteer(volunteer *Volunteer) (string, error) {
	if volunteer == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	volunteer.ID = primitive.NilObjectID
	volunteer.CreatedAt = time.Now()
	volunteer.UpdatedAt = volunteer.CreatedAt
	oid, err := insertOne(ctx, ms.volunteers, volunteer)
	if err != nil {
		return "", err
	}
	volunteer.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) UpdateVolunteer(id string, patch *VolunteerPatch) (*Volunteer, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[Volunteer](ctx, ms.volunteers, id, patch)
}

func (ms *MongoStorage) DelVolunteer(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.volunteers, id)
}
