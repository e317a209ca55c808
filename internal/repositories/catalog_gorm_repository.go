package repositories

import (
	"errors"
	"fmt"

	"perdami/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{db: db}
}

// GetAll retrieves all stores from the database.
func (r *GORMStoreRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to get all stores: %w", err)
	}
	return stores, nil
}

// GetByID retrieves a single store by its ID from the database.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// Create creates a new store in the database.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update updates an existing store in the database.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a store by its ID from the database.
func (r *GORMStoreRepository) Delete(id string) error {
	res := r.db.Delete(&models.Store{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GORMBankRepository is a GORM implementation of BankRepository.
type GORMBankRepository struct {
	db *gorm.DB
}

// NewGORMBankRepository creates a new instance of GORMBankRepository.
func NewGORMBankRepository(db *gorm.DB) *GORMBankRepository {
	return &GORMBankRepository{db: db}
}

// GetAll retrieves all banks from the database.
func (r *GORMBankRepository) GetAll() ([]models.Bank, error) {
	var banks []models.Bank
	if err := r.db.Find(&banks).Error; err != nil {
		return nil, fmt.Errorf("failed to get all banks: %w", err)
	}
	return banks, nil
}

// GetByID retrieves a single bank by its ID from the database.
func (r *GORMBankRepository) GetByID(id string) (*models.Bank, error) {
	var bank models.Bank
	if err := r.db.First(&bank, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank by ID %s: %w", id, err)
	}
	return &bank, nil
}

// Create creates a new bank in the database.
func (r *GORMBankRepository) Create(bank *models.Bank) error {
	if bank.ID == "" {
		bank.ID = uuid.New().String()
	}
	if err := r.db.Create(bank).Error; err != nil {
		return fmt.Errorf("failed to create bank: %w", err)
	}
	return nil
}
