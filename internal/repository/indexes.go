package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every collection relies on. Called once
// at startup; mongo treats re-creation of an existing index as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface {
		CreateIndexes(ctx context.Context) error
	}{
		&mongoVehicleRepository{collection: db.Collection("vehicles")},
		&mongoOrderRepository{collection: db.Collection("orders")},
		&mongoUserRepository{collection: db.Collection("users")},
	}

	for _, r := range repos {
		if err := r.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
