package services_test

import (
	"testing"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
	"perdami/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// seedOrderWithPayment creates a linked order/payment pair in the in-memory
// repositories, the way checkout does against a real database.
func seedOrderWithPayment(t *testing.T, orderRepo *repositories.MockOrderRepository, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:             "PD-20250904-TEST01",
		UserID:                  "u-1",
		SubtotalAmount:          100000,
		ServiceFee:              25000,
		TotalAmount:             125000,
		OrderStatus:             status,
		PickupStatus:            models.PickupStatusNotPickedUp,
		PickupDate:              time.Date(2025, 9, 5, 0, 0, 0, 0, time.Local),
		PickupVerificationToken: "token-" + string(status),
		Payment: &models.Payment{
			Status: models.PaymentStatusPending,
			Method: models.PaymentMethodBankTransfer,
			Amount: 125000,
		},
	}
	assert.NoError(t, orderRepo.Create(order))
	return order
}

func newPaymentFixture(t *testing.T) (*services.PaymentService, *repositories.MockOrderRepository, *repositories.MockPaymentRepository, *MockPublisher) {
	t.Helper()
	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository(orderRepo)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return services.NewPaymentService(paymentRepo, publisher), orderRepo, paymentRepo, publisher
}

func TestPaymentService_MarkPaid(t *testing.T) {
	service, orderRepo, _, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusPending)

	payment, err := service.MarkPaid(order.Payment.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.NotNil(t, payment.PaidAt)

	// Paid is terminal for the happy path; paying twice is a conflict.
	_, err = service.MarkPaid(order.Payment.ID)
	assert.ErrorIs(t, err, repositories.ErrConflict)
}

func TestPaymentService_SubmitProof(t *testing.T) {
	service, orderRepo, paymentRepo, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusPending)

	assert.ErrorIs(t, service.SubmitProof(order.Payment.ID, "   "), services.ErrMissingProof)
	assert.NoError(t, service.SubmitProof(order.Payment.ID, "https://cdn.example.com/proof.jpg"))

	payment, err := paymentRepo.GetByID(order.Payment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/proof.jpg", payment.ProofURL)

	// Once the payment leaves PENDING the proof is frozen.
	_, err = service.MarkPaid(order.Payment.ID)
	assert.NoError(t, err)
	assert.ErrorIs(t, service.SubmitProof(order.Payment.ID, "https://cdn.example.com/other.jpg"), repositories.ErrConflict)
}

func TestPaymentService_MarkFailed_CancelsOrder(t *testing.T) {
	service, orderRepo, _, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusConfirmed)

	payment, err := service.MarkFailed(order.Payment.ID, "transfer never arrived", "checked bank statement")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "transfer never arrived", payment.Reason)

	got, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.OrderStatus)
}

func TestPaymentService_MarkFailed_ReasonTooShort(t *testing.T) {
	service, orderRepo, paymentRepo, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusConfirmed)

	_, err := service.MarkFailed(order.Payment.ID, "  no  ", "")
	assert.ErrorIs(t, err, services.ErrReasonTooShort)

	// Nothing moved.
	payment, _ := paymentRepo.GetByID(order.Payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	got, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusConfirmed, got.OrderStatus)
}

func TestPaymentService_Refund(t *testing.T) {
	service, orderRepo, _, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusProcessing)

	payment, err := service.Refund(order.Payment.ID, services.RefundInput{
		Reason: "event cancelled by the committee",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
	// Amount defaults to the full payment amount.
	assert.Equal(t, 125000.0, payment.RefundAmount)
	assert.Equal(t, models.PaymentMethodBankTransfer, payment.RefundMethod)

	got, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusCancelled, got.OrderStatus)
}

func TestPaymentService_Refund_AmountTooLarge(t *testing.T) {
	service, orderRepo, paymentRepo, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusConfirmed)

	_, err := service.Refund(order.Payment.ID, services.RefundInput{
		Reason: "customer asked for more back",
		Amount: 200000,
	})
	assert.ErrorIs(t, err, services.ErrRefundTooLarge)

	// Validation happens before any mutation.
	payment, _ := paymentRepo.GetByID(order.Payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	got, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusConfirmed, got.OrderStatus)
}

func TestPaymentService_Close_CompletedOrderBlocks(t *testing.T) {
	service, orderRepo, paymentRepo, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusCompleted)

	_, err := service.MarkFailed(order.Payment.ID, "too late to fail this one", "")
	assert.ErrorIs(t, err, repositories.ErrConflict)

	// The whole cascade rolled back, payment included.
	payment, _ := paymentRepo.GetByID(order.Payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	got, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusCompleted, got.OrderStatus)
}

func TestPaymentService_Close_AlreadyCancelledOrderIsIdempotent(t *testing.T) {
	service, orderRepo, _, _ := newPaymentFixture(t)
	order := seedOrderWithPayment(t, orderRepo, models.OrderStatusCancelled)

	payment, err := service.MarkFailed(order.Payment.ID, "order was already cancelled", "")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
}
