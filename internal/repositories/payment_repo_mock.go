package repositories

import (
	"sync"
	"time"

	"perdami/internal/models"

	"github.com/google/uuid"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
// It shares the order map with a MockOrderRepository so the payment-close
// cascade behaves like the transactional GORM implementation.
type MockPaymentRepository struct {
	payments  map[string]models.Payment
	orderRepo *MockOrderRepository
	mu        sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository(orderRepo *MockOrderRepository) *MockPaymentRepository {
	r := &MockPaymentRepository{
		payments:  make(map[string]models.Payment),
		orderRepo: orderRepo,
	}
	if orderRepo != nil {
		orderRepo.paymentSink = r
	}
	return r
}

// Seed registers a payment directly, for wiring up test fixtures.
func (r *MockPaymentRepository) Seed(p models.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.payments[p.ID] = p
}

// GetByID returns a payment by its ID.
func (r *MockPaymentRepository) GetByID(id string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &payment, nil
}

// GetByOrderID returns the payment attached to an order.
func (r *MockPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.OrderID == orderID {
			p := payment
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// SubmitProof attaches the proof URL while the payment is still PENDING.
func (r *MockPaymentRepository) SubmitProof(id, proofURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	if payment.Status != models.PaymentStatusPending {
		return ErrConflict
	}
	payment.ProofURL = proofURL
	payment.UpdatedAt = time.Now()
	r.payments[id] = payment
	return nil
}

// MarkPaid moves the payment from PENDING to PAID.
func (r *MockPaymentRepository) MarkPaid(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	if payment.Status != models.PaymentStatusPending {
		return ErrConflict
	}
	payment.Status = models.PaymentStatusPaid
	payment.PaidAt = &at
	payment.UpdatedAt = time.Now()
	r.payments[id] = payment
	if r.orderRepo != nil {
		r.orderRepo.setPayment(payment.OrderID, payment)
	}
	return nil
}

// CloseAndCancelOrder writes the payment's terminal state and cancels the
// parent order, mirroring the single-transaction GORM semantics: if the
// order cannot be cancelled, the payment keeps its previous state.
func (r *MockPaymentRepository) CloseAndCancelOrder(p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[p.ID]
	if !ok {
		return ErrNotFound
	}
	if payment.Status != models.PaymentStatusPending && payment.Status != models.PaymentStatusPaid {
		return ErrConflict
	}

	if r.orderRepo != nil {
		if err := r.orderRepo.cancelOrder(payment.OrderID); err != nil {
			return err
		}
	}

	payment.Status = p.Status
	payment.Reason = p.Reason
	payment.AdminNote = p.AdminNote
	payment.RefundAmount = p.RefundAmount
	payment.RefundMethod = p.RefundMethod
	payment.RefundReference = p.RefundReference
	payment.UpdatedAt = time.Now()
	r.payments[p.ID] = payment
	if r.orderRepo != nil {
		r.orderRepo.setPayment(payment.OrderID, payment)
	}
	return nil
}
