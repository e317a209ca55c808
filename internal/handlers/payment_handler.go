package handlers

import (
	"perdami/internal/middleware"
	"perdami/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for the payment sub-machine.
type PaymentHandler struct {
	payments *services.PaymentService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *services.PaymentService, orders *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	paymentRoutes := router.Group("/payments", auth)
	paymentRoutes.Get("/:id", h.HandleGetPayment)
	paymentRoutes.Post("/:id/proof", h.HandleSubmitProof)
	paymentRoutes.Post("/:id/mark-paid", admin, h.HandleMarkPaid)
	paymentRoutes.Post("/:id/mark-failed", admin, h.HandleMarkFailed)
	paymentRoutes.Post("/:id/refund", admin, h.HandleRefund)
}

// HandleGetPayment returns one payment. Customers can only read payments
// of their own orders.
func (h *PaymentHandler) HandleGetPayment(c *fiber.Ctx) error {
	payment, err := h.payments.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve payment", err)
	}
	if !middleware.IsAdmin(c) {
		if err := h.requireOwnership(c, payment.OrderID); err != nil {
			return err
		}
	}
	return c.JSON(payment)
}

// HandleSubmitProof attaches an uploaded transfer-proof URL to a pending
// payment. Customers may only submit proof for their own orders.
func (h *PaymentHandler) HandleSubmitProof(c *fiber.Ctx) error {
	var req struct {
		ProofURL string `json:"proof_url" validate:"required,url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	payment, err := h.payments.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve payment", err)
	}
	if !middleware.IsAdmin(c) {
		if err := h.requireOwnership(c, payment.OrderID); err != nil {
			return err
		}
	}

	if err := h.payments.SubmitProof(payment.ID, req.ProofURL); err != nil {
		return respondError(c, "Could not submit payment proof", err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment proof submitted successfully",
	})
}

// HandleMarkPaid confirms a payment after proof review (admin only).
func (h *PaymentHandler) HandleMarkPaid(c *fiber.Ctx) error {
	payment, err := h.payments.MarkPaid(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not mark payment paid", err)
	}
	return c.JSON(payment)
}

// HandleMarkFailed closes a payment as FAILED and cancels its order
// (admin only, mandatory reason).
func (h *PaymentHandler) HandleMarkFailed(c *fiber.Ctx) error {
	var req struct {
		Reason    string `json:"reason" validate:"required,min=5"`
		AdminNote string `json:"admin_note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	payment, err := h.payments.MarkFailed(c.Params("id"), req.Reason, req.AdminNote)
	if err != nil {
		return respondError(c, "Could not mark payment failed", err)
	}
	return c.JSON(payment)
}

// HandleRefund closes a payment as REFUNDED and cancels its order
// (admin only).
func (h *PaymentHandler) HandleRefund(c *fiber.Ctx) error {
	var input services.RefundInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationErrors(c, err)
	}

	payment, err := h.payments.Refund(c.Params("id"), input)
	if err != nil {
		return respondError(c, "Could not refund payment", err)
	}
	return c.JSON(payment)
}

func (h *PaymentHandler) requireOwnership(c *fiber.Ctx, orderID string) error {
	order, err := h.orders.GetOrderByID(orderID)
	if err != nil {
		return respondError(c, "Could not retrieve order for payment", err)
	}
	if order.UserID != middleware.CurrentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only access payments of your own orders",
		})
	}
	return nil
}
