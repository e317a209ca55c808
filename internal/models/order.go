package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PickupStatus tracks whether the customer has collected the order.
type PickupStatus string

const (
	PickupStatusNotPickedUp PickupStatus = "NOT_PICKED_UP"
	PickupStatusPickedUp    PickupStatus = "PICKED_UP"
)

// allowedOrderTransitions defines the legal status transitions.
// Key is the current status, value is the set of statuses it may move to.
// COMPLETED and CANCELLED have no entry: they are terminal.
var allowedOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether s is a known order status value.
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s accepts no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order represents one pre-order transaction by one user.
type Order struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;type:varchar(32)"`
	UserID      string `json:"user_id" gorm:"type:varchar(36);index"`
	BankID      string `json:"bank_id,omitempty" gorm:"type:varchar(36)"`

	SubtotalAmount float64 `json:"subtotal_amount"`
	ServiceFee     float64 `json:"service_fee"`
	TotalAmount    float64 `json:"total_amount"`

	OrderStatus  OrderStatus  `json:"order_status" gorm:"type:varchar(20);default:'PENDING';index"`
	PickupStatus PickupStatus `json:"pickup_status" gorm:"type:varchar(20);default:'NOT_PICKED_UP'"`

	PickupDate              time.Time  `json:"pickup_date"`
	PickupVerificationToken string     `json:"-" gorm:"uniqueIndex;type:varchar(36)"`
	PickedUpAt              *time.Time `json:"picked_up_at,omitempty"`

	Items   []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is one line item: a quantity of a bundle at its price when ordered.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"type:varchar(36);index"`
	BundleID   string  `json:"bundle_id" gorm:"type:varchar(36);index"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"` // bundle selling price snapshot at order time
	TotalPrice float64 `json:"total_price"`

	Bundle *ProductBundle `json:"bundle,omitempty" gorm:"foreignKey:BundleID"`
}

// Batch returns the reporting batch the order's creation time falls in.
func (o *Order) Batch() Batch {
	return BatchForTime(o.CreatedAt)
}
