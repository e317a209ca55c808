package repositories

import (
	"errors"
	"fmt"
	"time"

	"perdami/internal/models"

	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

func (r *GORMPaymentRepository) getOne(query string, args ...interface{}) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// GetByID retrieves a payment by its ID.
func (r *GORMPaymentRepository) GetByID(id string) (*models.Payment, error) {
	return r.getOne("id = ?", id)
}

// GetByOrderID retrieves the payment attached to an order.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	return r.getOne("order_id = ?", orderID)
}

// SubmitProof attaches the proof URL while the payment is still PENDING.
func (r *GORMPaymentRepository) SubmitProof(id, proofURL string) error {
	res := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Update("proof_url", proofURL)
	if res.Error != nil {
		return fmt.Errorf("failed to submit payment proof: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(r.db, id)
	}
	return nil
}

// MarkPaid moves the payment from PENDING to PAID.
func (r *GORMPaymentRepository) MarkPaid(id string, at time.Time) error {
	res := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":  models.PaymentStatusPaid,
			"paid_at": at,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark payment paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(r.db, id)
	}
	return nil
}

// CloseAndCancelOrder writes the payment's terminal state and cancels the
// parent order in one transaction. The payment guard and the order guard are
// both embedded in their UPDATE statements; a COMPLETED order rolls the whole
// transaction back.
func (r *GORMPaymentRepository) CloseAndCancelOrder(p *models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status IN ?", p.ID,
				[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusPaid}).
			Updates(map[string]interface{}{
				"status":           p.Status,
				"reason":           p.Reason,
				"admin_note":       p.AdminNote,
				"refund_amount":    p.RefundAmount,
				"refund_method":    p.RefundMethod,
				"refund_reference": p.RefundReference,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to close payment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return r.conflictOrNotFound(tx, p.ID)
		}

		res = tx.Model(&models.Order{}).
			Where("id = ? AND order_status NOT IN ?", p.OrderID,
				[]models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled}).
			Update("order_status", models.OrderStatusCancelled)
		if res.Error != nil {
			return fmt.Errorf("failed to cancel order for closed payment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var order models.Order
			if err := tx.First(&order, "id = ?", p.OrderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to check order for closed payment: %w", err)
			}
			// Already cancelled is fine; a COMPLETED order must not be
			// pulled back out of its terminal state.
			if order.OrderStatus != models.OrderStatusCancelled {
				return ErrConflict
			}
		}
		return nil
	})
}

func (r *GORMPaymentRepository) conflictOrNotFound(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check payment existence: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
