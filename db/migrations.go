package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helpinghands/ngo-backend/migrations"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

const migrationsTimeout = 10 * time.Minute

// MigrationRecord is stored for every applied migration.
type MigrationRecord struct {
	Version   int       `bson:"version"`
	Name      string    `bson:"name"`
	AppliedAt time.Time `bson:"applied_at"`
}

// RunMigrationsUp applies, in order, the registered migrations newer than
// the last one recorded. The caller must be connected.
func (ms *MongoStorage) RunMigrationsUp() error {
	ctx, cancel := context.WithTimeout(context.Background(), migrationsTimeout)
	defer cancel()

	last, err := lastAppliedMigration(ctx, ms.migrations)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}
	database := ms.DBClient.Database(ms.database)
	applied := 0
	for _, mig := range migrations.SortedByVersionAsc() {
		if mig.Version <= last {
			continue
		}
		log.Infow("applying migration", "version", mig.Version, "name", mig.Name)
		if err := mig.Up(ctx, database); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		record := MigrationRecord{Version: mig.Version, Name: mig.Name, AppliedAt: time.Now()}
		if _, err := ms.migrations.InsertOne(ctx, record); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
		}
		applied++
	}
	if applied > 0 {
		log.Infow("database migrations applied", "count", applied, "previous", last)
	}
	return nil
}

// RunMigrationsDown reverts the last steps applied migrations, all of them
// if steps is not positive.
func (ms *MongoStorage) RunMigrationsDown(steps int) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrationsTimeout)
	defer cancel()
	if err := ms.Connect(ctx); err != nil {
		return err
	}
	last, err := lastAppliedMigration(ctx, ms.migrations)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}
	if steps <= 0 || steps > last {
		steps = last
	}
	registry := migrations.AsMap()
	database := ms.DBClient.Database(ms.database)
	for version := last; version > last-steps; version-- {
		mig, ok := registry[version]
		if !ok {
			return fmt.Errorf("migration %d not found in registry", version)
		}
		log.Infow("reverting migration", "version", mig.Version, "name", mig.Name)
		if err := mig.Down(ctx, database); err != nil {
			return fmt.Errorf("failed to revert migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		if _, err := ms.migrations.DeleteOne(ctx, bson.M{"version": version}); err != nil {
			return fmt.Errorf("failed to remove migration record %d: %w", version, err)
		}
	}
	return nil
}

// lastAppliedMigration returns the highest recorded version, 0 on a new
// database.
func lastAppliedMigration(ctx context.Context, collection *mongo.Collection) (int, error) {
	var record MigrationRecord
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	if err := collection.FindOne(ctx, bson.M{}, opts).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return record.Version, nil
}
