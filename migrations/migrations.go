// Package migrations holds the versioned changes of the MongoDB schema. Each
// migration registers itself from its init function and db applies the
// pending ones, in version order, when it connects.
package migrations

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationFunc applies or reverts a change on the database.
type MigrationFunc func(ctx context.Context, database *mongo.Database) error

// Migration is a registered schema change. Down reverts Up.
type Migration struct {
	Version int
	Name    string
	Up      MigrationFunc
	Down    MigrationFunc
}

var registry = map[int]Migration{}

// AddMigration registers a migration. Registering twice the same version is
// a programming error and panics.
func AddMigration(version int, name string, up, down MigrationFunc) {
	if _, ok := registry[version]; ok {
		panic(fmt.Sprintf("migration %d registered twice", version))
	}
	registry[version] = Migration{Version: version, Name: name, Up: up, Down: down}
}

// DelMigration removes a migration from the registry. Only tests use it.
func DelMigration(version int) { delete(registry, version) }

// SortedByVersionAsc returns the registered migrations, oldest first.
func SortedByVersionAsc() []Migration {
	versions := slices.Sorted(maps.Keys(registry))
	migs := make([]Migration, 0, len(versions))
	for _, v := range versions {
		migs = append(migs, registry[v])
	}
	return migs
}

// AsMap returns a copy of the registry indexed by version.
func AsMap() map[int]Migration {
	return maps.Clone(registry)
}
