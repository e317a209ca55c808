package services

import (
	"errors"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
)

// Errors the pickup verification flow can reject a request with.
var (
	ErrAlreadyPickedUp = errors.New("order has already been picked up")
	ErrOrderNotReady   = errors.New("order is not ready for pickup")
)

// PickupService handles the pickup-counter verification flow: a single-use
// token (or the order number as a fallback lookup key) closes a READY order.
type PickupService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewPickupService creates a new PickupService.
func NewPickupService(orderRepo repositories.OrderRepository, publisher EventPublisher) *PickupService {
	return &PickupService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// Lookup resolves a verification key to its order without mutating anything,
// so the pickup counter can show the order before confirming.
func (s *PickupService) Lookup(key string) (*models.Order, error) {
	return s.findOrder(key)
}

// Verify marks the order picked up and completed. The state change is one
// conditional update guarded on the order being READY and not yet picked
// up; a second attempt, with the same or any key, fails with
// ErrAlreadyPickedUp and leaves the order untouched.
func (s *PickupService) Verify(key string) (*models.Order, error) {
	order, err := s.findOrder(key)
	if err != nil {
		return nil, err
	}
	if order.PickupStatus == models.PickupStatusPickedUp {
		return nil, ErrAlreadyPickedUp
	}
	if order.OrderStatus != models.OrderStatusReady {
		return nil, ErrOrderNotReady
	}

	now := time.Now()
	if err := s.orderRepo.MarkPickedUp(order.ID, now); err != nil {
		// Lost the race against a concurrent verification or a
		// concurrent status change.
		if errors.Is(err, repositories.ErrConflict) {
			if fresh, ferr := s.orderRepo.GetByID(order.ID); ferr == nil &&
				fresh.OrderStatus != models.OrderStatusCompleted {
				return nil, ErrOrderNotReady
			}
			return nil, ErrAlreadyPickedUp
		}
		return nil, err
	}
	order.PickupStatus = models.PickupStatusPickedUp
	order.OrderStatus = models.OrderStatusCompleted
	order.PickedUpAt = &now

	publishEvent(s.publisher, OrderEvent{
		Type:        EventOrderPickedUp,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		OrderStatus: order.OrderStatus,
	})

	return order, nil
}

// findOrder tries the verification token first, then falls back to an exact
// order-number match.
func (s *PickupService) findOrder(key string) (*models.Order, error) {
	order, err := s.orderRepo.GetByPickupToken(key)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return s.orderRepo.GetByOrderNumber(key)
}
