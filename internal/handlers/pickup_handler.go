package handlers

import (
	"perdami/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PickupHandler handles the pickup-counter verification endpoints.
type PickupHandler struct {
	service *services.PickupService
}

// NewPickupHandler creates a new PickupHandler.
func NewPickupHandler(service *services.PickupService) *PickupHandler {
	return &PickupHandler{
		service: service,
	}
}

// RegisterRoutes registers the pickup routes with the Fiber app.
// Both endpoints are staff-only: the key may be a verification token or an
// order number.
func (h *PickupHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	pickupRoutes := router.Group("/pickup", auth, admin)
	pickupRoutes.Get("/verify/:key", h.HandleLookup)
	pickupRoutes.Post("/verify/:key", h.HandleVerify)
}

// HandleLookup shows the order behind a verification key without touching it,
// so the counter can confirm the customer before completing the pickup.
func (h *PickupHandler) HandleLookup(c *fiber.Ctx) error {
	order, err := h.service.Lookup(c.Params("key"))
	if err != nil {
		return respondError(c, "Could not look up order for pickup", err)
	}
	return c.JSON(order)
}

// HandleVerify completes the pickup: single-use, conflict on repeats.
func (h *PickupHandler) HandleVerify(c *fiber.Ctx) error {
	order, err := h.service.Verify(c.Params("key"))
	if err != nil {
		return respondError(c, "Could not verify pickup", err)
	}
	return c.JSON(fiber.Map{
		"message": "Pickup verified successfully",
		"order":   order,
	})
}
