package services

import (
	"context"
	"log"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
)

// reminderStatuses are the orders worth reminding: confirmed or further
// along, but not yet collected or closed.
var reminderStatuses = []models.OrderStatus{
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusReady,
}

// ReminderService is the cron-style pickup reminder job. It scans for
// orders due for pickup and dispatches best-effort notifications; there is
// no retry queue, a missed reminder is simply picked up on the next tick.
type ReminderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewReminderService creates a new ReminderService.
func NewReminderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *ReminderService {
	return &ReminderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// SendReminders publishes a pickup reminder for every open order whose
// pickup date falls on the given day. Returns how many were dispatched.
func (s *ReminderService) SendReminders(day time.Time) (int, error) {
	pickupDate := day
	orders, err := s.orderRepo.List(repositories.OrderFilter{
		Statuses:   reminderStatuses,
		PickupDate: &pickupDate,
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, order := range orders {
		if order.PickupStatus == models.PickupStatusPickedUp {
			continue
		}
		publishEvent(s.publisher, OrderEvent{
			Type:        EventPickupReminder,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			OrderStatus: order.OrderStatus,
			PickupDate:  order.PickupDate.Format("2006-01-02"),
		})
		sent++
	}
	return sent, nil
}

// Run loops SendReminders for today until the context is cancelled.
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := s.SendReminders(time.Now())
			if err != nil {
				log.Printf("Pickup reminder scan failed: %v", err)
				continue
			}
			if sent > 0 {
				log.Printf("Dispatched %d pickup reminders", sent)
			}
		}
	}
}
