package handlers

import (
	"strconv"
	"time"

	"perdami/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles the admin reporting endpoints.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the reporting routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	reportRoutes := router.Group("/reports", auth, admin)
	reportRoutes.Get("/profit", h.HandleProfitReport)
	reportRoutes.Get("/batches", h.HandleBatchSummary)
}

// HandleProfitReport computes revenue/cost/profit over a date range,
// optionally restricted to one store.
func (h *ReportHandler) HandleProfitReport(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid report filter",
			"error":   err.Error(),
		})
	}

	report, err := h.service.ProfitReport(filter)
	if err != nil {
		return respondError(c, "Could not build profit report", err)
	}
	return c.JSON(report)
}

// HandleBatchSummary buckets orders into the two daily pickup batches.
func (h *ReportHandler) HandleBatchSummary(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid report filter",
			"error":   err.Error(),
		})
	}

	summary, err := h.service.BatchSummary(filter)
	if err != nil {
		return respondError(c, "Could not build batch summary", err)
	}
	return c.JSON(summary)
}

func (h *ReportHandler) parseFilter(c *fiber.Ctx) (services.ReportFilter, error) {
	filter := services.ReportFilter{
		StoreID: c.Query("store_id"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		// The "to" day is inclusive in the query string.
		filter.To = t.AddDate(0, 0, 1)
	}
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.TopN = n
	}
	return filter, nil
}
