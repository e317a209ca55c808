package repositories

import (
	"sync"

	"perdami/internal/models"

	"github.com/google/uuid"
)

// MockStoreRepository is an in-memory implementation of StoreRepository.
type MockStoreRepository struct {
	stores map[string]models.Store
	mu     sync.RWMutex
}

// NewMockStoreRepository creates a new instance of MockStoreRepository.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{
		stores: make(map[string]models.Store),
	}
}

// GetAll returns all stores.
func (r *MockStoreRepository) GetAll() ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storeList := make([]models.Store, 0, len(r.stores))
	for _, store := range r.stores {
		storeList = append(storeList, store)
	}
	return storeList, nil
}

// GetByID returns a store by its ID.
func (r *MockStoreRepository) GetByID(id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &store, nil
}

// Create adds a new store.
func (r *MockStoreRepository) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	r.stores[store.ID] = *store
	return nil
}

// Update replaces an existing store.
func (r *MockStoreRepository) Update(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[store.ID]; !ok {
		return ErrNotFound
	}
	r.stores[store.ID] = *store
	return nil
}

// Delete removes a store.
func (r *MockStoreRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[id]; !ok {
		return ErrNotFound
	}
	delete(r.stores, id)
	return nil
}

// MockBankRepository is an in-memory implementation of BankRepository.
type MockBankRepository struct {
	banks map[string]models.Bank
	mu    sync.RWMutex
}

// NewMockBankRepository creates a new instance of MockBankRepository.
func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{
		banks: make(map[string]models.Bank),
	}
}

// GetAll returns all banks.
func (r *MockBankRepository) GetAll() ([]models.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bankList := make([]models.Bank, 0, len(r.banks))
	for _, bank := range r.banks {
		bankList = append(bankList, bank)
	}
	return bankList, nil
}

// GetByID returns a bank by its ID.
func (r *MockBankRepository) GetByID(id string) (*models.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bank, ok := r.banks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &bank, nil
}

// Create adds a new bank.
func (r *MockBankRepository) Create(bank *models.Bank) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bank.ID == "" {
		bank.ID = uuid.New().String()
	}
	r.banks[bank.ID] = *bank
	return nil
}
