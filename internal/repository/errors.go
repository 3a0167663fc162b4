package repository

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrVehicleUnavailable is returned by Claim when the vehicle exists but
	// is already committed to another order.
	ErrVehicleUnavailable = errors.New("vehicle is not available")

	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicateVehicleNumber = errors.New("vehicle number already registered")
)
