package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oaknest/storefront/internal/domain"
)

type mongoVehicleRepository struct {
	collection *mongo.Collection
}

func NewMongoVehicleRepository(db *mongo.Database) VehicleRepository {
	return &mongoVehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

func (m *mongoVehicleRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_available", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create vehicle indexes: %w", err)
	}
	return nil
}

func (m *mongoVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	cursor, err := m.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]domain.Vehicle, 0)
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (m *mongoVehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &v, nil
}

func (m *mongoVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	if _, err := m.collection.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateVehicleNumber
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (m *mongoVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	update := bson.M{"$set": bson.M{
		"name":           v.Name,
		"type":           v.Type,
		"number":         v.Number,
		"capacity":       v.Capacity,
		"images":         v.Images,
		"driver_name":    v.DriverName,
		"driver_contact": v.DriverContact,
		"driver_license": v.DriverLicense,
		"driver_image":   v.DriverImage,
		"is_available":   v.IsAvailable,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": v.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateVehicleNumber
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (m *mongoVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (m *mongoVehicleRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_available": available}})
	if err != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// Claim is the "assign only if still available" write. The availability
// check is part of the filter, so a concurrent claim on the same vehicle
// matches zero documents instead of double-booking it.
func (m *mongoVehicleRepository) Claim(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "is_available": true}
	update := bson.M{"$set": bson.M{"is_available": false}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing vehicle from one that lost the race.
		if _, getErr := m.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrVehicleUnavailable
	}
	return nil
}

func (m *mongoVehicleRepository) Release(ctx context.Context, id primitive.ObjectID) error {
	return m.SetAvailability(ctx, id, true)
}
