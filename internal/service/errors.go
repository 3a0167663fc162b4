package service

import "errors"

// Workflow errors. Handlers map these to HTTP status codes; messages built
// on top of them (via %w) stay readable for the storefront UI.
var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrOutOfStock      = errors.New("product is currently out of stock")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidID       = errors.New("invalid id")

	ErrEmailMismatch       = errors.New("email does not match the order")
	ErrNotCancellable      = errors.New("order can no longer be cancelled")
	ErrCancelWindowExpired = errors.New("cancellation window has expired")

	ErrNoVehicleAssigned  = errors.New("no vehicle assigned to this order")
	ErrVehicleIDRequired  = errors.New("vehicle id is required")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")

	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidCapacity    = errors.New("capacity must not be negative")
)
