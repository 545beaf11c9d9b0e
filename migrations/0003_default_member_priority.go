package migrations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	AddMigration(3, "default_member_priority", upDefaultMemberPriority, downDefaultMemberPriority)
}

// defaultMemberPriority sorts the members without priority after the ones
// ranked by the admins.
const defaultMemberPriority = 1000

func upDefaultMemberPriority(ctx context.Context, database *mongo.Database) error {
	// add priority field with the default value to all members
	// if the field already exists, do not overwrite
	_, err := database.Collection("members").UpdateMany(ctx,
		bson.M{"priority": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"priority": defaultMemberPriority}})
	if err != nil {
		return fmt.Errorf("failed to add priority to members: %w", err)
	}
	// volunteers imported without visibility flags are listed and active
	for _, field := range []string{"showInList", "isActive"} {
		if _, err := database.Collection("volunteers").UpdateMany(ctx,
			bson.M{field: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{field: true}}); err != nil {
			return fmt.Errorf("failed to add %s to volunteers: %w", field, err)
		}
	}
	return nil
}

func downDefaultMemberPriority(_ context.Context, _ *mongo.Database) error {
	// we do not remove anything to avoid data loss
	return nil
}
