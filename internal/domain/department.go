package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is a showroom taxonomy entry used by the storefront navigation.
type Department struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
