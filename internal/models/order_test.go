package models_test

import (
	"testing"

	"perdami/internal/models"

	"github.com/stretchr/testify/assert"
)

var allOrderStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusReady,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

func TestCanTransition_ForwardPath(t *testing.T) {
	assert.True(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusConfirmed))
	assert.True(t, models.CanTransition(models.OrderStatusConfirmed, models.OrderStatusProcessing))
	assert.True(t, models.CanTransition(models.OrderStatusProcessing, models.OrderStatusReady))
	assert.True(t, models.CanTransition(models.OrderStatusReady, models.OrderStatusCompleted))
}

func TestCanTransition_NoSkippingAhead(t *testing.T) {
	assert.False(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusProcessing))
	assert.False(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusReady))
	assert.False(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusCompleted))
	assert.False(t, models.CanTransition(models.OrderStatusConfirmed, models.OrderStatusCompleted))
}

func TestCanTransition_NoGoingBack(t *testing.T) {
	assert.False(t, models.CanTransition(models.OrderStatusConfirmed, models.OrderStatusPending))
	assert.False(t, models.CanTransition(models.OrderStatusReady, models.OrderStatusProcessing))
}

func TestCanTransition_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range allOrderStatuses {
		if from.IsTerminal() {
			continue
		}
		assert.True(t, models.CanTransition(from, models.OrderStatusCancelled), "from %s", from)
	}
}

func TestCanTransition_TerminalStatesRejectEverything(t *testing.T) {
	for _, from := range []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		for _, to := range allOrderStatuses {
			assert.False(t, models.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range allOrderStatuses {
		assert.True(t, models.IsValidOrderStatus(s))
	}
	assert.False(t, models.IsValidOrderStatus("SHIPPED"))
	assert.False(t, models.IsValidOrderStatus(""))
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	assert.False(t, models.PaymentStatusPending.IsTerminal())
	assert.False(t, models.PaymentStatusPaid.IsTerminal())
	assert.True(t, models.PaymentStatusFailed.IsTerminal())
	assert.True(t, models.PaymentStatusRefunded.IsTerminal())
}
