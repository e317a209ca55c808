package repositories

import (
	"perdami/internal/models"
)

// BundleRepository defines the interface for product bundle data access.
type BundleRepository interface {
	GetAll() ([]models.ProductBundle, error)
	GetByID(id string) (*models.ProductBundle, error)
	GetByStore(storeID string) ([]models.ProductBundle, error)
	Create(bundle *models.ProductBundle) error
	Update(bundle *models.ProductBundle) error
	Delete(id string) error
}
