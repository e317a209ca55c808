package repositories

import (
	"sort"
	"sync"
	"time"

	"perdami/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Its conditional updates mirror the GORM implementation's semantics so the
// lifecycle guarantees hold in tests too.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex

	// paymentSink mirrors newly created payments into the linked
	// MockPaymentRepository, the way both GORM repositories read the
	// same database.
	paymentSink *MockPaymentRepository
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if order.Payment != nil {
		if order.Payment.ID == "" {
			order.Payment.ID = uuid.New().String()
		}
		order.Payment.OrderID = order.ID
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	sink := r.paymentSink
	r.mu.Unlock()

	if sink != nil && order.Payment != nil {
		sink.Seed(*order.Payment)
	}
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// GetByOrderNumber returns an order by its human-readable number.
func (r *MockOrderRepository) GetByOrderNumber(number string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OrderNumber == number {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// GetByPickupToken returns an order by its pickup verification token.
func (r *MockOrderRepository) GetByPickupToken(token string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.PickupVerificationToken == token {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// List returns orders matching the filter, newest first.
func (r *MockOrderRepository) List(filter OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Order
	for _, order := range r.orders {
		if !matchesFilter(order, filter) {
			continue
		}
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matchesFilter(order models.Order, filter OrderFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, s := range filter.Statuses {
			if order.OrderStatus == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.UserID != "" && order.UserID != filter.UserID {
		return false
	}
	if filter.From != nil && order.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !order.CreatedAt.Before(*filter.To) {
		return false
	}
	if filter.PickupDate != nil {
		y1, m1, d1 := filter.PickupDate.Date()
		y2, m2, d2 := order.PickupDate.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	return true
}

// UpdateStatus performs the guarded status transition.
func (r *MockOrderRepository) UpdateStatus(id string, from, to models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.OrderStatus != from {
		return ErrConflict
	}
	order.OrderStatus = to
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// MarkPickedUp performs the single-use pickup verification write.
func (r *MockOrderRepository) MarkPickedUp(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.OrderStatus != models.OrderStatusReady ||
		order.PickupStatus != models.PickupStatusNotPickedUp {
		return ErrConflict
	}
	order.PickupStatus = models.PickupStatusPickedUp
	order.OrderStatus = models.OrderStatusCompleted
	order.PickedUpAt = &at
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Delete removes an order.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// cancelOrder is used by MockPaymentRepository to apply the payment-close
// cascade the way the transactional GORM implementation does.
func (r *MockOrderRepository) cancelOrder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.OrderStatus == models.OrderStatusCancelled {
		return nil
	}
	if order.OrderStatus.IsTerminal() {
		return ErrConflict
	}
	order.OrderStatus = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// setPayment is used by MockPaymentRepository to keep the embedded payment
// view of an order in sync.
func (r *MockOrderRepository) setPayment(orderID string, p models.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return
	}
	order.Payment = &p
	r.orders[orderID] = order
}
