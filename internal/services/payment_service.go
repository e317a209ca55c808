package services

import (
	"errors"
	"strings"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
)

// Errors the payment sub-machine can reject a request with.
var (
	ErrReasonTooShort = errors.New("reason must be at least 5 characters")
	ErrRefundTooLarge = errors.New("refund amount exceeds the order total")
	ErrMissingProof   = errors.New("proof URL is required")
)

// minReasonLength is the mandatory reason length for closing a payment.
const minReasonLength = 5

// PaymentService handles the payment status sub-machine: PENDING -> PAID,
// and PENDING/PAID -> FAILED or REFUNDED, each cascading the parent order
// into CANCELLED within the repository transaction.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	publisher   EventPublisher
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, publisher EventPublisher) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		publisher:   publisher,
	}
}

// GetByID retrieves a payment by its ID.
func (s *PaymentService) GetByID(id string) (*models.Payment, error) {
	return s.paymentRepo.GetByID(id)
}

// GetByOrderID retrieves the payment attached to an order.
func (s *PaymentService) GetByOrderID(orderID string) (*models.Payment, error) {
	return s.paymentRepo.GetByOrderID(orderID)
}

// SubmitProof attaches an already-uploaded transfer proof URL to a PENDING
// payment. The URL is treated as an opaque string; the upload itself is
// somebody else's problem.
func (s *PaymentService) SubmitProof(id, proofURL string) error {
	if strings.TrimSpace(proofURL) == "" {
		return ErrMissingProof
	}
	return s.paymentRepo.SubmitProof(id, proofURL)
}

// MarkPaid confirms a payment after the admin has reviewed the proof.
func (s *PaymentService) MarkPaid(id string) (*models.Payment, error) {
	if err := s.paymentRepo.MarkPaid(id, time.Now()); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, OrderEvent{
		Type:          EventPaymentPaid,
		OrderID:       payment.OrderID,
		PaymentStatus: payment.Status,
		TotalAmount:   payment.Amount,
	})

	return payment, nil
}

// MarkFailed closes the payment as FAILED with a mandatory reason and
// cancels the parent order in the same transaction.
func (s *PaymentService) MarkFailed(id, reason, adminNote string) (*models.Payment, error) {
	return s.close(id, models.PaymentStatusFailed, reason, adminNote, closeOptions{})
}

// RefundInput carries the refund details recorded alongside the closure.
type RefundInput struct {
	Reason    string  `json:"reason" validate:"required,min=5"`
	AdminNote string  `json:"admin_note"`
	Amount    float64 `json:"amount" validate:"omitempty,gt=0"`
	Method    string  `json:"method" validate:"omitempty,oneof=BANK_TRANSFER"`
	Reference string  `json:"reference"`
}

// Refund closes the payment as REFUNDED and cancels the parent order. The
// refund amount defaults to the full payment amount and is validated before
// any state mutation occurs.
func (s *PaymentService) Refund(id string, input RefundInput) (*models.Payment, error) {
	return s.close(id, models.PaymentStatusRefunded, input.Reason, input.AdminNote, closeOptions{
		refundAmount:    input.Amount,
		refundMethod:    models.PaymentMethod(input.Method),
		refundReference: input.Reference,
	})
}

type closeOptions struct {
	refundAmount    float64
	refundMethod    models.PaymentMethod
	refundReference string
}

func (s *PaymentService) close(id string, status models.PaymentStatus, reason, adminNote string, opts closeOptions) (*models.Payment, error) {
	if len(strings.TrimSpace(reason)) < minReasonLength {
		return nil, ErrReasonTooShort
	}

	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if status == models.PaymentStatusRefunded {
		if opts.refundAmount == 0 {
			opts.refundAmount = payment.Amount
		}
		if opts.refundAmount > payment.Amount {
			return nil, ErrRefundTooLarge
		}
		if opts.refundMethod == "" {
			opts.refundMethod = models.PaymentMethodBankTransfer
		}
	}

	payment.Status = status
	payment.Reason = strings.TrimSpace(reason)
	payment.AdminNote = adminNote
	payment.RefundAmount = opts.refundAmount
	payment.RefundMethod = opts.refundMethod
	payment.RefundReference = opts.refundReference

	if err := s.paymentRepo.CloseAndCancelOrder(payment); err != nil {
		return nil, err
	}

	publishEvent(s.publisher, OrderEvent{
		Type:          EventPaymentClosed,
		OrderID:       payment.OrderID,
		PaymentStatus: status,
		OrderStatus:   models.OrderStatusCancelled,
		Reason:        payment.Reason,
	})

	return payment, nil
}
