package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Campaigns returns the campaigns sorted by date, newest first. A positive
// limit caps the number of campaigns returned.
func (ms *MongoStorage) Campaigns(limit int64) ([]Campaign, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[Campaign](ctx, ms.campaigns, bson.M{}, opts)
}

func (ms *MongoStorage) Campaign(id string) (*Campaign, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[Campaign](ctx, ms.campaigns, id)
}

// CreateCampaign stores a new campaign and returns its ID. Campaigns without
// date are dated now.
func (ms *MongoStorage) CreateCampaign(campaign *Campaign) (string, error) {
	if campaign == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	campaign.ID = primitive.NilObjectID
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt
	if campaign.Date.IsZero() {
		campaign.Date = campaign.CreatedAt
	}
	oid, err := insertOne(ctx, ms.campaigns, campaign)
	if err != nil {
		return "", err
	}
	campaign.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) UpdateCampaign(id string, patch *CampaignPatch) (*Campaign, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[Campaign](ctx, ms.campaigns, id, patch)
}

func (ms *MongoStorage) DelCampaign(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.campaigns, id)
}
