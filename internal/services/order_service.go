package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"

	"github.com/google/uuid"
)

// Errors the order lifecycle can reject a request with.
var (
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
	ErrOrderNotPickedUp   = errors.New("order has not been picked up yet")
	ErrOrderNotDeletable  = errors.New("order can only be deleted while PENDING or CANCELLED")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be positive")
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo  repositories.OrderRepository
	bundleRepo repositories.BundleRepository
	bankRepo   repositories.BankRepository
	publisher  EventPublisher
	serviceFee float64 // flat per-order surcharge, in the store's currency
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, bundleRepo repositories.BundleRepository,
	bankRepo repositories.BankRepository, publisher EventPublisher, serviceFee float64) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		bundleRepo: bundleRepo,
		bankRepo:   bankRepo,
		publisher:  publisher,
		serviceFee: serviceFee,
	}
}

// CreateOrderItemInput is one requested line item.
type CreateOrderItemInput struct {
	BundleID string `json:"bundle_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the checkout request.
type CreateOrderInput struct {
	UserID     string                 `json:"-"`
	BankID     string                 `json:"bank_id" validate:"omitempty,uuid"`
	PickupDate time.Time              `json:"pickup_date" validate:"required"`
	Items      []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder validates the requested bundles, snapshots their prices and
// persists the order together with its items and a PENDING payment in one
// transaction. Total is always subtotal plus the flat service fee.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if input.BankID != "" {
		if _, err := s.bankRepo.GetByID(input.BankID); err != nil {
			return nil, fmt.Errorf("bank %s: %w", input.BankID, err)
		}
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		bundle, err := s.bundleRepo.GetByID(item.BundleID)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", item.BundleID, err)
		}

		// Price is snapshotted here; later bundle price changes do not
		// touch existing orders.
		totalPrice := bundle.SellingPrice * float64(item.Quantity)
		items = append(items, models.OrderItem{
			BundleID:   bundle.ID,
			Quantity:   item.Quantity,
			Price:      bundle.SellingPrice,
			TotalPrice: totalPrice,
		})
		subtotal += totalPrice
	}

	now := time.Now()
	order := &models.Order{
		ID:                      uuid.New().String(),
		OrderNumber:             generateOrderNumber(now),
		UserID:                  input.UserID,
		BankID:                  input.BankID,
		SubtotalAmount:          subtotal,
		ServiceFee:              s.serviceFee,
		TotalAmount:             subtotal + s.serviceFee,
		OrderStatus:             models.OrderStatusPending,
		PickupStatus:            models.PickupStatusNotPickedUp,
		PickupDate:              input.PickupDate,
		PickupVerificationToken: uuid.New().String(),
		Items:                   items,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	order.Payment = &models.Payment{
		ID:      uuid.New().String(),
		OrderID: order.ID,
		Status:  models.PaymentStatusPending,
		Method:  models.PaymentMethodBankTransfer,
		Amount:  order.TotalAmount,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	publishEvent(s.publisher, OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		OrderStatus: order.OrderStatus,
		TotalAmount: order.TotalAmount,
		PickupDate:  order.PickupDate.Format("2006-01-02"),
	})

	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderByNumber retrieves a single order by its human-readable number.
func (s *OrderService) GetOrderByNumber(number string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(number)
}

// ListOrders retrieves orders matching the filter.
func (s *OrderService) ListOrders(filter repositories.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

// UpdateOrderStatus moves an order along the lifecycle. The transition is
// checked against the allowed-transitions table, and the write itself is
// guarded on the status the decision was made against, so a concurrent
// transition surfaces as a conflict instead of a lost update.
func (s *OrderService) UpdateOrderStatus(id string, to models.OrderStatus) (*models.Order, error) {
	if !models.IsValidOrderStatus(to) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	from := order.OrderStatus
	if !models.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if from == models.OrderStatusReady && to == models.OrderStatusCompleted &&
		order.PickupStatus != models.PickupStatusPickedUp {
		return nil, ErrOrderNotPickedUp
	}

	if err := s.orderRepo.UpdateStatus(id, from, to); err != nil {
		return nil, err
	}
	order.OrderStatus = to

	publishEvent(s.publisher, OrderEvent{
		Type:        EventOrderStatus,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		OrderStatus: to,
	})

	return order, nil
}

// DeleteOrder removes an order. Deletion is permitted only from PENDING
// or CANCELLED.
func (s *OrderService) DeleteOrder(id string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order.OrderStatus != models.OrderStatusPending && order.OrderStatus != models.OrderStatusCancelled {
		return ErrOrderNotDeletable
	}
	return s.orderRepo.Delete(id)
}

// generateOrderNumber builds the human-readable order identity,
// e.g. PD-20250904-3F9A2C.
func generateOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("PD-%s-%s", t.Format("20060102"), suffix)
}
