package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oaknest/storefront/internal/domain"
)

type mongoDepartmentRepository struct {
	collection *mongo.Collection
}

func NewMongoDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &mongoDepartmentRepository{
		collection: db.Collection("departments"),
	}
}

func (m *mongoDepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	cursor, err := m.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	departments := make([]domain.Department, 0)
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	return departments, nil
}

func (m *mongoDepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	if _, err := m.collection.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}
