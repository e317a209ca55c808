package repositories

import (
	"sync"

	"perdami/internal/models"

	"github.com/google/uuid"
)

// MockBundleRepository is an in-memory implementation of BundleRepository.
type MockBundleRepository struct {
	bundles map[string]models.ProductBundle
	mu      sync.RWMutex
}

// NewMockBundleRepository creates a new instance of MockBundleRepository.
func NewMockBundleRepository() *MockBundleRepository {
	return &MockBundleRepository{
		bundles: make(map[string]models.ProductBundle),
	}
}

// GetAll returns all bundles.
func (r *MockBundleRepository) GetAll() ([]models.ProductBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundleList := make([]models.ProductBundle, 0, len(r.bundles))
	for _, bundle := range r.bundles {
		bundleList = append(bundleList, bundle)
	}
	return bundleList, nil
}

// GetByID returns a bundle by its ID.
func (r *MockBundleRepository) GetByID(id string) (*models.ProductBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundle, ok := r.bundles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &bundle, nil
}

// GetByStore returns the bundles sold by one store.
func (r *MockBundleRepository) GetByStore(storeID string) ([]models.ProductBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bundleList []models.ProductBundle
	for _, bundle := range r.bundles {
		if bundle.StoreID == storeID {
			bundleList = append(bundleList, bundle)
		}
	}
	return bundleList, nil
}

// Create adds a new bundle.
func (r *MockBundleRepository) Create(bundle *models.ProductBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bundle.ID == "" {
		bundle.ID = uuid.New().String()
	}
	r.bundles[bundle.ID] = *bundle
	return nil
}

// Update replaces an existing bundle.
func (r *MockBundleRepository) Update(bundle *models.ProductBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bundles[bundle.ID]; !ok {
		return ErrNotFound
	}
	r.bundles[bundle.ID] = *bundle
	return nil
}

// Delete removes a bundle.
func (r *MockBundleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bundles[id]; !ok {
		return ErrNotFound
	}
	delete(r.bundles, id)
	return nil
}
