package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oaknest/storefront/internal/domain"
)

// Interfaces are defined here, on the consumer side, so services can be
// tested against hand-rolled mocks without MongoDB.

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ReplaceAll drops the current catalog and inserts the given products.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	// Claim marks a vehicle unavailable only if it is currently available.
	// The check and the write are a single conditional update, so two
	// concurrent assignments cannot both win the same vehicle.
	Claim(ctx context.Context, id primitive.ObjectID) error
	// Release marks a vehicle available again.
	Release(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	// FindByCustomerField does a partial case-insensitive match on one
	// customer field ("email", "name" or "phone"), newest first, capped.
	FindByCustomerField(ctx context.Context, field, query string, limit int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error
	SetVehicle(ctx context.Context, orderID, vehicleID primitive.ObjectID, notes string) error
	ClearVehicle(ctx context.Context, orderID primitive.ObjectID) error
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	Create(ctx context.Context, d *domain.Department) error
}
