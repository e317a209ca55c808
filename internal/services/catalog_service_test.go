package services_test

import (
	"testing"

	"perdami/internal/models"
	"perdami/internal/repositories"
	"perdami/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCatalogFixture() (*services.CatalogService, *repositories.MockStoreRepository, *repositories.MockBundleRepository) {
	storeRepo := repositories.NewMockStoreRepository()
	bundleRepo := repositories.NewMockBundleRepository()
	return services.NewCatalogService(storeRepo, bundleRepo, repositories.NewMockBankRepository()), storeRepo, bundleRepo
}

func TestCatalogService_CreateBundle(t *testing.T) {
	service, storeRepo, _ := newCatalogFixture()

	store := &models.Store{Name: "Dapur Ibu"}
	assert.NoError(t, storeRepo.Create(store))

	bundle := &models.ProductBundle{
		StoreID:      store.ID,
		Name:         "Snack Box",
		CostPrice:    60000,
		SellingPrice: 100000,
	}
	assert.NoError(t, service.CreateBundle(bundle))
	assert.NotEmpty(t, bundle.ID)

	got, err := service.GetBundleByID(bundle.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Snack Box", got.Name)
}

func TestCatalogService_CreateBundle_UnknownStore(t *testing.T) {
	service, _, _ := newCatalogFixture()

	err := service.CreateBundle(&models.ProductBundle{
		StoreID:      "missing",
		Name:         "Snack Box",
		SellingPrice: 100000,
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_CreateBundle_BelowCostAllowed(t *testing.T) {
	service, storeRepo, _ := newCatalogFixture()

	store := &models.Store{Name: "Dapur Ibu"}
	assert.NoError(t, storeRepo.Create(store))

	// Promotional pricing: selling below cost is legal.
	assert.NoError(t, service.CreateBundle(&models.ProductBundle{
		StoreID:      store.ID,
		Name:         "Loss Leader",
		CostPrice:    100000,
		SellingPrice: 80000,
	}))
}

func TestCatalogService_GetBundlesByStore(t *testing.T) {
	service, storeRepo, bundleRepo := newCatalogFixture()

	store := &models.Store{Name: "Dapur Ibu"}
	other := &models.Store{Name: "Warung Pak Eko"}
	assert.NoError(t, storeRepo.Create(store))
	assert.NoError(t, storeRepo.Create(other))
	assert.NoError(t, bundleRepo.Create(&models.ProductBundle{StoreID: store.ID, Name: "Snack Box", SellingPrice: 100000}))
	assert.NoError(t, bundleRepo.Create(&models.ProductBundle{StoreID: other.ID, Name: "Nasi Kotak", SellingPrice: 35000}))

	bundles, err := service.GetBundlesByStore(store.ID)
	assert.NoError(t, err)
	assert.Len(t, bundles, 1)
	assert.Equal(t, "Snack Box", bundles[0].Name)

	_, err = service.GetBundlesByStore("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
