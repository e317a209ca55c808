package repositories

import (
	"errors"
	"fmt"
	"time"

	"perdami/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists the order together with its items and payment record
// in a single transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
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
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GORMOrderRepository) getOne(query string, args ...interface{}) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Bundle").Preload("Payment").
		First(&order, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetByID retrieves an order with its items, bundles and payment preloaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	return r.getOne("id = ?", id)
}

// GetByOrderNumber retrieves an order by its human-readable number.
func (r *GORMOrderRepository) GetByOrderNumber(number string) (*models.Order, error) {
	return r.getOne("order_number = ?", number)
}

// GetByPickupToken retrieves an order by its pickup verification token.
func (r *GORMOrderRepository) GetByPickupToken(token string) (*models.Order, error) {
	return r.getOne("pickup_verification_token = ?", token)
}

// List retrieves orders matching the filter, newest first.
func (r *GORMOrderRepository) List(filter OrderFilter) ([]models.Order, error) {
	q := r.db.Preload("Items").Preload("Items.Bundle").Preload("Payment")
	if len(filter.Statuses) > 0 {
		q = q.Where("order_status IN ?", filter.Statuses)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}
	if filter.PickupDate != nil {
		dayStart := time.Date(filter.PickupDate.Year(), filter.PickupDate.Month(), filter.PickupDate.Day(),
			0, 0, 0, 0, filter.PickupDate.Location())
		q = q.Where("pickup_date >= ? AND pickup_date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus performs the guarded status transition.
func (r *GORMOrderRepository) UpdateStatus(id string, from, to models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", id, from).
		Update("order_status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(id)
	}
	return nil
}

// MarkPickedUp is the single-use pickup verification write. Both
// preconditions live in the WHERE clause, so neither a concurrent
// verification nor a concurrent cancellation can race past this: only a
// READY, not-yet-collected order is completed.
func (r *GORMOrderRepository) MarkPickedUp(id string, at time.Time) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND order_status = ? AND pickup_status = ?",
			id, models.OrderStatusReady, models.PickupStatusNotPickedUp).
		Updates(map[string]interface{}{
			"pickup_status": models.PickupStatusPickedUp,
			"order_status":  models.OrderStatusCompleted,
			"picked_up_at":  at,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order picked up: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(id)
	}
	return nil
}

// Delete removes the order with its items and payment.
func (r *GORMOrderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&models.Payment{}, "order_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete order payment: %w", err)
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// conflictOrNotFound distinguishes a failed precondition from a missing row.
func (r *GORMOrderRepository) conflictOrNotFound(id string) error {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
