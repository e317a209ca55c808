package services

import (
	"encoding/json"
	"log"

	"perdami/internal/models"
)

// EventPublisher is the notification dispatcher boundary. The production
// implementation is the RabbitMQ client; tests substitute a mock.
//
// Publishing is fire-and-forget at every call site: a failed publish is
// logged and never rolls back the committed order/payment state.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event routing keys, one per notification type.
const (
	EventOrderCreated   = "order.created"
	EventOrderStatus    = "order.status_changed"
	EventOrderPickedUp  = "order.picked_up"
	EventPaymentPaid    = "payment.paid"
	EventPaymentClosed  = "payment.closed"
	EventPickupReminder = "order.pickup_reminder"
)

// OrderEvent is the notification payload, discriminated by Type.
// Fields irrelevant to a given type stay empty.
type OrderEvent struct {
	Type          string               `json:"type"`
	OrderID       string               `json:"order_id"`
	OrderNumber   string               `json:"order_number"`
	UserID        string               `json:"user_id,omitempty"`
	OrderStatus   models.OrderStatus   `json:"order_status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"payment_status,omitempty"`
	TotalAmount   float64              `json:"total_amount,omitempty"`
	PickupDate    string               `json:"pickup_date,omitempty"`
	Reason        string               `json:"reason,omitempty"`
}

// publishEvent marshals and publishes the event, swallowing failures.
func publishEvent(pub EventPublisher, event OrderEvent) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", event.Type, event.OrderID, err)
		return
	}
	if err := pub.Publish(event.Type, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
	}
}
