package repositories

import (
	"perdami/internal/models"
)

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	GetAll() ([]models.Store, error)
	GetByID(id string) (*models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	Delete(id string) error
}

// BankRepository defines the interface for payment-destination bank data access.
type BankRepository interface {
	GetAll() ([]models.Bank, error)
	GetByID(id string) (*models.Bank, error)
	Create(bank *models.Bank) error
}
