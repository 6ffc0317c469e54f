package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const rolesCollection = "roles"

// RoleRepository persists the immutable role reference set.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

// Ensure upserts the role by name; seeding is idempotent.
func (r *RoleRepository) Ensure(ctx context.Context, name string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{"name": name}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("ensure role %q: %w", name, err)
	}
	return nil
}

func (r *RoleRepository) Exists(ctx context.Context, name string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count role %q: %w", name, err)
	}
	return n > 0, nil
}
