package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is persisted as a string. There is no forward-only state
// machine here: admins may move an order between any two statuses, e.g. to
// correct a mistake. Only the transition into Cancelled carries a side
// effect (releasing the assigned vehicle).
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still self-cancel an order in
// this status. Shipped, Delivered and Cancelled are terminal for that purpose.
func (s OrderStatus) Cancellable() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return true
}

func (s OrderStatus) String() string {
	return string(s)
}

type Customer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

// OrderItem captures the unit price at order time. Product is resolved by the
// service when returning an expanded order and is never persisted.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer      Customer           `bson:"customer" json:"customer"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"total_amount" json:"totalAmount"`
	Status        OrderStatus        `bson:"status" json:"status"`
	VehicleID     primitive.ObjectID `bson:"vehicle_id,omitempty" json:"vehicleId,omitempty"`
	Vehicle       *Vehicle           `bson:"-" json:"vehicle,omitempty"`
	DeliveryNotes string             `bson:"delivery_notes" json:"deliveryNotes"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

func (o *Order) HasVehicle() bool {
	return !o.VehicleID.IsZero()
}
