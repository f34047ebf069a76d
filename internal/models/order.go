package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle: created as pending when checkout begins, processing once a
// gateway token is attached, completed only after the gateway confirms the
// payment. Fulfillment continues through shipped/delivered; cancelled is
// terminal. Statuses are stored lowercase.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the canonical order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the address snapshot stored on the order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Order is order entity
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          string
	Total           int64
	ShippingAddress *ShippingAddress
	PaymentIntent   *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	Items           []OrderItem
}

// OrderItem is an immutable order line with the unit price snapshotted at
// purchase time.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	Price     int64
	CreatedAt time.Time
}
