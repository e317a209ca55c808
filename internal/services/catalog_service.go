package services

import (
	"perdami/internal/models"
	"perdami/internal/repositories"
)

// CatalogService handles business logic for the store/bundle/bank catalog.
type CatalogService struct {
	storeRepo  repositories.StoreRepository
	bundleRepo repositories.BundleRepository
	bankRepo   repositories.BankRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(storeRepo repositories.StoreRepository, bundleRepo repositories.BundleRepository,
	bankRepo repositories.BankRepository) *CatalogService {
	return &CatalogService{
		storeRepo:  storeRepo,
		bundleRepo: bundleRepo,
		bankRepo:   bankRepo,
	}
}

// GetAllStores retrieves all stores.
func (s *CatalogService) GetAllStores() ([]models.Store, error) {
	return s.storeRepo.GetAll()
}

// CreateStore creates a new store.
func (s *CatalogService) CreateStore(store *models.Store) error {
	return s.storeRepo.Create(store)
}

// UpdateStore updates an existing store.
func (s *CatalogService) UpdateStore(store *models.Store) error {
	return s.storeRepo.Update(store)
}

// DeleteStore deletes a store by its ID.
func (s *CatalogService) DeleteStore(id string) error {
	return s.storeRepo.Delete(id)
}

// GetAllBundles retrieves all bundles.
func (s *CatalogService) GetAllBundles() ([]models.ProductBundle, error) {
	return s.bundleRepo.GetAll()
}

// GetBundleByID retrieves a single bundle by its ID.
func (s *CatalogService) GetBundleByID(id string) (*models.ProductBundle, error) {
	return s.bundleRepo.GetByID(id)
}

// GetBundlesByStore retrieves the bundles one store sells.
func (s *CatalogService) GetBundlesByStore(storeID string) ([]models.ProductBundle, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	return s.bundleRepo.GetByStore(storeID)
}

// CreateBundle creates a new bundle after checking its store exists.
// Note that selling below cost is deliberately allowed; promotional
// bundles are priced that way on purpose.
func (s *CatalogService) CreateBundle(bundle *models.ProductBundle) error {
	if _, err := s.storeRepo.GetByID(bundle.StoreID); err != nil {
		return err
	}
	return s.bundleRepo.Create(bundle)
}

// UpdateBundle updates an existing bundle. Price changes never touch
// existing orders, which hold their own price snapshots.
func (s *CatalogService) UpdateBundle(bundle *models.ProductBundle) error {
	if _, err := s.storeRepo.GetByID(bundle.StoreID); err != nil {
		return err
	}
	return s.bundleRepo.Update(bundle)
}

// DeleteBundle deletes a bundle by its ID.
func (s *CatalogService) DeleteBundle(id string) error {
	return s.bundleRepo.Delete(id)
}

// GetAllBanks retrieves the payment destination banks.
func (s *CatalogService) GetAllBanks() ([]models.Bank, error) {
	return s.bankRepo.GetAll()
}

// CreateBank registers a new payment destination bank.
func (s *CatalogService) CreateBank(bank *models.Bank) error {
	return s.bankRepo.Create(bank)
}
