package handlers

import (
	"time"

	"perdami/internal/middleware"
	"perdami/internal/models"
	"perdami/internal/repositories"
	"perdami/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
// auth applies to every route; admin additionally guards the lifecycle
// mutations.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", admin, h.HandleUpdateOrderStatus)
	orderRoutes.Delete("/:id", admin, h.HandleDeleteOrder)
}

// HandleCreateOrder places a new pre-order for the authenticated customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationErrors(c, err)
	}

	input.UserID = middleware.CurrentUserID(c)
	order, err := h.service.CreateOrder(input)
	if err != nil {
		return respondError(c, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders lists orders. Admins see everything (optionally filtered
// by status and creation range); customers see only their own orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	filter := repositories.OrderFilter{}
	if !middleware.IsAdmin(c) {
		filter.UserID = middleware.CurrentUserID(c)
	}
	if status := c.Query("status"); status != "" {
		s := models.OrderStatus(status)
		if !models.IsValidOrderStatus(s) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown order status filter",
				"error":   services.ErrInvalidStatus.Error(),
			})
		}
		filter.Statuses = []models.OrderStatus{s}
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid from date filter",
			"error":   err.Error(),
		})
	}
	filter.From = from
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid to date filter",
			"error":   err.Error(),
		})
	}
	filter.To = to

	orders, err := h.service.ListOrders(filter)
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order. Customers can only read
// their own orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	if !middleware.IsAdmin(c) && order.UserID != middleware.CurrentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only view your own orders",
		})
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus moves an order along the lifecycle (admin only).
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var updateData struct {
		Status models.OrderStatus `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), updateData.Status)
	if err != nil {
		return respondError(c, "Could not update order status", err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order (admin only, PENDING/CANCELLED only).
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Params("id")); err != nil {
		return respondError(c, "Could not delete order", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// parameter yields nil; a malformed one yields the parse error.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
