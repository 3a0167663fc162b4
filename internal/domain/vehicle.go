package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleTypeTruck      VehicleType = "Truck"
	VehicleTypeVan        VehicleType = "Van"
	VehicleTypeCar        VehicleType = "Car"
	VehicleTypeMotorcycle VehicleType = "Motorcycle"
	VehicleTypeOther      VehicleType = "Other"
)

func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeTruck, VehicleTypeVan, VehicleTypeCar, VehicleTypeMotorcycle, VehicleTypeOther:
		return true
	}
	return false
}

type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"vehicleName"`
	Type          VehicleType        `bson:"type" json:"vehicleType"`
	Number        string             `bson:"number" json:"vehicleNumber"`
	Capacity      float64            `bson:"capacity" json:"capacity"`
	Images        []string           `bson:"images" json:"vehicleImages"`
	DriverName    string             `bson:"driver_name" json:"driverName"`
	DriverContact string             `bson:"driver_contact" json:"driverContact"`
	DriverLicense string             `bson:"driver_license" json:"driverLicense"`
	DriverImage   string             `bson:"driver_image" json:"driverImage"`
	IsAvailable   bool               `bson:"is_available" json:"isAvailable"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
