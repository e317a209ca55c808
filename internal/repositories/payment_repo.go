package repositories

import (
	"time"

	"perdami/internal/models"
)

// PaymentRepository defines the interface for payment data access.
//
// Every mutation is guarded on the payment's current status inside the
// write itself; CloseAndCancelOrder additionally commits the order
// cancellation cascade in the same transaction.
type PaymentRepository interface {
	GetByID(id string) (*models.Payment, error)
	GetByOrderID(orderID string) (*models.Payment, error)

	// SubmitProof attaches an uploaded transfer proof URL while the
	// payment is still PENDING.
	SubmitProof(id, proofURL string) error

	// MarkPaid moves the payment from PENDING to PAID.
	MarkPaid(id string, at time.Time) error

	// CloseAndCancelOrder writes the payment's terminal state (FAILED or
	// REFUNDED, with reason and refund fields already set on p) and cancels
	// the parent order, both in one transaction. Guarded on the payment
	// being PENDING or PAID and the order not being COMPLETED.
	CloseAndCancelOrder(p *models.Payment) error
}
