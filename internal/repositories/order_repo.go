package repositories

import (
	"time"

	"perdami/internal/models"
)

// OrderFilter narrows the order set returned by List.
// Zero values mean "no filter" for that dimension.
type OrderFilter struct {
	Statuses   []models.OrderStatus
	UserID     string
	From       *time.Time // CreatedAt lower bound, inclusive
	To         *time.Time // CreatedAt upper bound, exclusive
	PickupDate *time.Time // matches the calendar day of PickupDate
}

// OrderRepository defines the interface for order data access.
//
// Status and pickup mutations embed their precondition in the update itself
// (conditional update, not read-then-write), so concurrent admin actions on
// the same order cannot interleave into an illegal state.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByOrderNumber(number string) (*models.Order, error)
	GetByPickupToken(token string) (*models.Order, error)
	List(filter OrderFilter) ([]models.Order, error)

	// UpdateStatus moves the order from one status to another, guarded on
	// the order still being in the expected current status. Returns
	// ErrConflict when the guard fails, ErrNotFound when the order is gone.
	UpdateStatus(id string, from, to models.OrderStatus) error

	// MarkPickedUp atomically sets PickupStatus to PICKED_UP and OrderStatus
	// to COMPLETED, guarded on the order being READY and not yet picked up.
	// Returns ErrConflict when either precondition fails.
	MarkPickedUp(id string, at time.Time) error

	Delete(id string) error
}
