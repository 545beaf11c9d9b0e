package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Certificates returns every certificate, the last inserted first.
func (ms *MongoStorage) Certificates() ([]Certificate, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return findAll[Certificate](ctx, ms.certificates, bson.M{}, opts)
}

func (ms *MongoStorage) Certificate(id string) (*Certificate, error) {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	return findByID[Certificate](ctx, ms.certificates, id)
}

func (ms *MongoStorage) CreateCertificate(certificate *Certificate) (string, error) {
	if certificate == nil {
		return "", ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return "", err
	}
	defer cancel()
	certificate.ID = primitive.NilObjectID
	certificate.CreatedAt = time.Now()
	certificate.UpdatedAt = certificate.CreatedAt
	oid, err := insertOne(ctx, ms.certificates, certificate)
	if err != nil {
		return "", err
	}
	certificate.ID = oid
	return oid.Hex(), nil
}

func (ms *MongoStorage) UpdateCertificate(id string, patch *CertificatePatch) (*Certificate, error) {
	if patch == nil {
		return nil, ErrInvalidData
	}
	ctx, cancel, err := ms.begin()
	if err != nil {
		return nil, err
	}
	defer cancel()
	patch.UpdatedAt = time.Now()
	return updateByID[Certificate](ctx, ms.certificates, id, patch)
}

func (ms *MongoStorage) DelCertificate(id string) error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	return deleteByID(ctx, ms.certificates, id)
}
