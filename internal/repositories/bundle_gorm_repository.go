package repositories

import (
	"errors"
	"fmt"

	"perdami/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBundleRepository is a GORM implementation of BundleRepository.
type GORMBundleRepository struct {
	db *gorm.DB
}

// NewGORMBundleRepository creates a new instance of GORMBundleRepository.
func NewGORMBundleRepository(db *gorm.DB) *GORMBundleRepository {
	return &GORMBundleRepository{
		db: db,
	}
}

// GetAll retrieves all bundles from the database.
func (r *GORMBundleRepository) GetAll() ([]models.ProductBundle, error) {
	var bundles []models.ProductBundle
	if err := r.db.Find(&bundles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all bundles: %w", err)
	}
	return bundles, nil
}

// GetByID retrieves a single bundle by its ID from the database.
func (r *GORMBundleRepository) GetByID(id string) (*models.ProductBundle, error) {
	var bundle models.ProductBundle
	if err := r.db.First(&bundle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bundle by ID %s: %w", id, err)
	}
	return &bundle, nil
}

// GetByStore retrieves the bundles sold by one store.
func (r *GORMBundleRepository) GetByStore(storeID string) ([]models.ProductBundle, error) {
	var bundles []models.ProductBundle
	if err := r.db.Find(&bundles, "store_id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get bundles for store %s: %w", storeID, err)
	}
	return bundles, nil
}

// Create creates a new bundle in the database.
func (r *GORMBundleRepository) Create(bundle *models.ProductBundle) error {
	if bundle.ID == "" {
		bundle.ID = uuid.New().String()
	}
	if err := r.db.Create(bundle).Error; err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	return nil
}

// Update updates an existing bundle in the database.
func (r *GORMBundleRepository) Update(bundle *models.ProductBundle) error {
	res := r.db.Save(bundle) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update bundle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a bundle by its ID from the database.
func (r *GORMBundleRepository) Delete(id string) error {
	res := r.db.Delete(&models.ProductBundle{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bundle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
