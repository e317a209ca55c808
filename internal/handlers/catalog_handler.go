package handlers

import (
	"perdami/internal/models"
	"perdami/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for stores, bundles and banks.
// Listings are public (the storefront reads them before login); mutations
// are admin only.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleListStores)
	storeRoutes.Get("/:id/bundles", h.HandleListStoreBundles)
	storeRoutes.Post("/", auth, admin, h.HandleCreateStore)
	storeRoutes.Put("/:id", auth, admin, h.HandleUpdateStore)
	storeRoutes.Delete("/:id", auth, admin, h.HandleDeleteStore)

	bundleRoutes := router.Group("/bundles")
	bundleRoutes.Get("/", h.HandleListBundles)
	bundleRoutes.Get("/:id", h.HandleGetBundle)
	bundleRoutes.Post("/", auth, admin, h.HandleCreateBundle)
	bundleRoutes.Put("/:id", auth, admin, h.HandleUpdateBundle)
	bundleRoutes.Delete("/:id", auth, admin, h.HandleDeleteBundle)

	bankRoutes := router.Group("/banks")
	bankRoutes.Get("/", h.HandleListBanks)
	bankRoutes.Post("/", auth, admin, h.HandleCreateBank)
}

// HandleListStores lists all stores.
func (h *CatalogHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.GetAllStores()
	if err != nil {
		return respondError(c, "Could not retrieve stores", err)
	}
	return c.JSON(stores)
}

// HandleListStoreBundles lists the bundles one store sells.
func (h *CatalogHandler) HandleListStoreBundles(c *fiber.Ctx) error {
	bundles, err := h.service.GetBundlesByStore(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve store bundles", err)
	}
	return c.JSON(bundles)
}

// HandleCreateStore creates a new store (admin only).
func (h *CatalogHandler) HandleCreateStore(c *fiber.Ctx) error {
	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(store); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.service.CreateStore(&store); err != nil {
		return respondError(c, "Could not create store", err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleUpdateStore updates an existing store (admin only).
func (h *CatalogHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	store.ID = c.Params("id")
	if err := h.validate.Struct(store); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.service.UpdateStore(&store); err != nil {
		return respondError(c, "Could not update store", err)
	}
	return c.JSON(store)
}

// HandleDeleteStore deletes a store (admin only).
func (h *CatalogHandler) HandleDeleteStore(c *fiber.Ctx) error {
	if err := h.service.DeleteStore(c.Params("id")); err != nil {
		return respondError(c, "Could not delete store", err)
	}
	return c.JSON(fiber.Map{
		"message": "Store deleted successfully",
	})
}

// HandleListBundles lists all bundles.
func (h *CatalogHandler) HandleListBundles(c *fiber.Ctx) error {
	bundles, err := h.service.GetAllBundles()
	if err != nil {
		return respondError(c, "Could not retrieve bundles", err)
	}
	return c.JSON(bundles)
}

// HandleGetBundle retrieves a single bundle.
func (h *CatalogHandler) HandleGetBundle(c *fiber.Ctx) error {
	bundle, err := h.service.GetBundleByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve bundle", err)
	}
	return c.JSON(bundle)
}

// HandleCreateBundle creates a new bundle (admin only).
func (h *CatalogHandler) HandleCreateBundle(c *fiber.Ctx) error {
	var bundle models.ProductBundle
	if err := c.BodyParser(&bundle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(bundle); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.service.CreateBundle(&bundle); err != nil {
		return respondError(c, "Could not create bundle", err)
	}
	return c.Status(fiber.StatusCreated).JSON(bundle)
}

// HandleUpdateBundle updates an existing bundle (admin only).
func (h *CatalogHandler) HandleUpdateBundle(c *fiber.Ctx) error {
	var bundle models.ProductBundle
	if err := c.BodyParser(&bundle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	bundle.ID = c.Params("id")
	if err := h.validate.Struct(bundle); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.service.UpdateBundle(&bundle); err != nil {
		return respondError(c, "Could not update bundle", err)
	}
	return c.JSON(bundle)
}

// HandleDeleteBundle deletes a bundle (admin only).
func (h *CatalogHandler) HandleDeleteBundle(c *fiber.Ctx) error {
	if err := h.service.DeleteBundle(c.Params("id")); err != nil {
		return respondError(c, "Could not delete bundle", err)
	}
	return c.JSON(fiber.Map{
		"message": "Bundle deleted successfully",
	})
}

// HandleListBanks lists the payment destination banks.
func (h *CatalogHandler) HandleListBanks(c *fiber.Ctx) error {
	banks, err := h.service.GetAllBanks()
	if err != nil {
		return respondError(c, "Could not retrieve banks", err)
	}
	return c.JSON(banks)
}

// HandleCreateBank registers a payment destination bank (admin only).
func (h *CatalogHandler) HandleCreateBank(c *fiber.Ctx) error {
	var bank models.Bank
	if err := c.BodyParser(&bank); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(bank); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.service.CreateBank(&bank); err != nil {
		return respondError(c, "Could not create bank", err)
	}
	return c.Status(fiber.StatusCreated).JSON(bank)
}
