package services_test

import (
	"testing"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
	"perdami/internal/services"

	"github.com/stretchr/testify/assert"
)

type reportFixture struct {
	service    *services.ReportService
	orderRepo  *repositories.MockOrderRepository
	bundleRepo *repositories.MockBundleRepository
	storeRepo  *repositories.MockStoreRepository
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		orderRepo:  repositories.NewMockOrderRepository(),
		bundleRepo: repositories.NewMockBundleRepository(),
		storeRepo:  repositories.NewMockStoreRepository(),
	}
	f.service = services.NewReportService(f.orderRepo, f.bundleRepo, f.storeRepo)
	return f
}

func (f *reportFixture) seedStore(t *testing.T, id, name string) {
	t.Helper()
	assert.NoError(t, f.storeRepo.Create(&models.Store{ID: id, Name: name}))
}

func (f *reportFixture) seedBundle(t *testing.T, id, storeID, name string, cost, selling float64) {
	t.Helper()
	assert.NoError(t, f.bundleRepo.Create(&models.ProductBundle{
		ID:           id,
		StoreID:      storeID,
		Name:         name,
		CostPrice:    cost,
		SellingPrice: selling,
	}))
}

func (f *reportFixture) seedOrder(t *testing.T, status models.OrderStatus, createdAt time.Time, serviceFee float64, items ...models.OrderItem) *models.Order {
	t.Helper()
	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	order := &models.Order{
		UserID:         "u-1",
		SubtotalAmount: subtotal,
		ServiceFee:     serviceFee,
		TotalAmount:    subtotal + serviceFee,
		OrderStatus:    status,
		PickupStatus:   models.PickupStatusNotPickedUp,
		PickupDate:     createdAt.AddDate(0, 0, 1),
		Items:          items,
		CreatedAt:      createdAt,
	}
	assert.NoError(t, f.orderRepo.Create(order))
	return order
}

func item(bundleID string, qty int, unitPrice float64) models.OrderItem {
	return models.OrderItem{
		BundleID:   bundleID,
		Quantity:   qty,
		Price:      unitPrice,
		TotalPrice: unitPrice * float64(qty),
	}
}

func TestReportService_ProfitReport(t *testing.T) {
	f := newReportFixture(t)
	f.seedStore(t, "s-1", "Dapur Ibu")
	f.seedBundle(t, "b-1", "s-1", "Snack Box", 60000, 100000)

	f.seedOrder(t, models.OrderStatusCompleted, time.Now(), 25000, item("b-1", 1, 100000))

	report, err := f.service.ProfitReport(services.ReportFilter{})
	assert.NoError(t, err)

	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 100000.0, report.SalesRevenue)
	assert.Equal(t, 25000.0, report.ServiceFeeRevenue)
	assert.Equal(t, 125000.0, report.TotalIncome)
	assert.Equal(t, 60000.0, report.StoreCosts)
	assert.Equal(t, 65000.0, report.NetProfit)
	assert.InDelta(t, 0.52, report.ProfitMargin, 1e-9)

	assert.Len(t, report.Bundles, 1)
	assert.Equal(t, "b-1", report.Bundles[0].BundleID)
	assert.Equal(t, 40000.0, report.Bundles[0].Profit)
	assert.Len(t, report.Stores, 1)
	assert.Equal(t, "Dapur Ibu", report.Stores[0].Name)
}

func TestReportService_ProfitReport_ExcludesPendingAndCancelled(t *testing.T) {
	f := newReportFixture(t)
	f.seedStore(t, "s-1", "Dapur Ibu")
	f.seedBundle(t, "b-1", "s-1", "Snack Box", 60000, 100000)

	f.seedOrder(t, models.OrderStatusPending, time.Now(), 25000, item("b-1", 1, 100000))
	f.seedOrder(t, models.OrderStatusCancelled, time.Now(), 25000, item("b-1", 2, 100000))
	f.seedOrder(t, models.OrderStatusConfirmed, time.Now(), 25000, item("b-1", 1, 100000))

	report, err := f.service.ProfitReport(services.ReportFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 100000.0, report.SalesRevenue)
}

func TestReportService_ProfitReport_StoreFilter(t *testing.T) {
	f := newReportFixture(t)
	f.seedStore(t, "s-1", "Dapur Ibu")
	f.seedStore(t, "s-2", "Warung Pak Eko")
	f.seedBundle(t, "b-1", "s-1", "Snack Box", 60000, 100000)
	f.seedBundle(t, "b-2", "s-2", "Nasi Kotak", 20000, 35000)

	f.seedOrder(t, models.OrderStatusCompleted, time.Now(), 25000,
		item("b-1", 1, 100000), item("b-2", 2, 35000))
	f.seedOrder(t, models.OrderStatusCompleted, time.Now(), 25000, item("b-2", 1, 35000))

	report, err := f.service.ProfitReport(services.ReportFilter{StoreID: "s-1"})
	assert.NoError(t, err)

	// Only the first order touches store s-1; only its s-1 line counts.
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 100000.0, report.SalesRevenue)
	assert.Equal(t, 60000.0, report.StoreCosts)
	assert.Equal(t, 25000.0, report.ServiceFeeRevenue)
	assert.Len(t, report.Stores, 1)
	assert.Equal(t, "s-1", report.Stores[0].StoreID)
}

func TestReportService_ProfitReport_DeletedBundleStillCountsRevenue(t *testing.T) {
	f := newReportFixture(t)

	// No bundle on file for b-gone; the snapshot price is all we have.
	f.seedOrder(t, models.OrderStatusCompleted, time.Now(), 25000, item("b-gone", 1, 50000))

	report, err := f.service.ProfitReport(services.ReportFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 50000.0, report.SalesRevenue)
	assert.Equal(t, 0.0, report.StoreCosts)
	assert.Empty(t, report.Bundles)
}

func TestReportService_ProfitReport_ZeroIncomeMargin(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.service.ProfitReport(services.ReportFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.TotalIncome)
	assert.Equal(t, 0.0, report.ProfitMargin)
}

func TestReportService_ProfitReport_TopN(t *testing.T) {
	f := newReportFixture(t)
	f.seedStore(t, "s-1", "Dapur Ibu")
	f.seedBundle(t, "b-1", "s-1", "Low Margin", 90000, 100000)
	f.seedBundle(t, "b-2", "s-1", "High Margin", 10000, 100000)

	f.seedOrder(t, models.OrderStatusCompleted, time.Now(), 25000,
		item("b-1", 1, 100000), item("b-2", 1, 100000))

	report, err := f.service.ProfitReport(services.ReportFilter{TopN: 1})
	assert.NoError(t, err)
	assert.Len(t, report.Bundles, 1)
	assert.Equal(t, "b-2", report.Bundles[0].BundleID, "highest profit first")
}

func TestReportService_ProfitReport_OrderIndependent(t *testing.T) {
	type seed struct {
		status models.OrderStatus
		items  []models.OrderItem
	}
	seeds := []seed{
		{models.OrderStatusCompleted, []models.OrderItem{item("b-1", 1, 100000), item("b-2", 2, 35000)}},
		{models.OrderStatusConfirmed, []models.OrderItem{item("b-2", 1, 35000)}},
		{models.OrderStatusProcessing, []models.OrderItem{item("b-1", 3, 100000)}},
	}

	build := func(order []int) *services.ProfitReport {
		f := newReportFixture(t)
		f.seedStore(t, "s-1", "Dapur Ibu")
		f.seedBundle(t, "b-1", "s-1", "Snack Box", 60000, 100000)
		f.seedBundle(t, "b-2", "s-1", "Nasi Kotak", 20000, 35000)
		for _, i := range order {
			s := seeds[i]
			items := make([]models.OrderItem, len(s.items))
			copy(items, s.items)
			f.seedOrder(t, s.status, time.Now(), 25000, items...)
		}
		report, err := f.service.ProfitReport(services.ReportFilter{})
		assert.NoError(t, err)
		return report
	}

	// The same order set must aggregate identically whatever the
	// insertion order.
	base := build([]int{0, 1, 2})
	for _, perm := range [][]int{{2, 1, 0}, {1, 2, 0}, {2, 0, 1}} {
		report := build(perm)
		assert.Equal(t, base.OrderCount, report.OrderCount)
		assert.Equal(t, base.SalesRevenue, report.SalesRevenue)
		assert.Equal(t, base.StoreCosts, report.StoreCosts)
		assert.Equal(t, base.ServiceFeeRevenue, report.ServiceFeeRevenue)
		assert.Equal(t, base.NetProfit, report.NetProfit)
		assert.Equal(t, base.ProfitMargin, report.ProfitMargin)
		assert.Equal(t, base.Bundles, report.Bundles)
		assert.Equal(t, base.Stores, report.Stores)
	}
}

func TestReportService_BatchSummary(t *testing.T) {
	f := newReportFixture(t)
	day := time.Date(2025, 9, 4, 0, 0, 0, 0, time.Local)

	f.seedOrder(t, models.OrderStatusConfirmed, day.Add(9*time.Hour), 25000, item("b-1", 1, 100000))
	f.seedOrder(t, models.OrderStatusConfirmed, day.Add(17*time.Hour+59*time.Minute), 25000, item("b-1", 1, 100000))
	f.seedOrder(t, models.OrderStatusConfirmed, day.Add(18*time.Hour), 25000, item("b-1", 1, 50000))
	f.seedOrder(t, models.OrderStatusConfirmed, day.Add(2*time.Hour), 25000, item("b-1", 1, 50000))

	summary, err := f.service.BatchSummary(services.ReportFilter{})
	assert.NoError(t, err)
	assert.Len(t, summary, 2)

	assert.Equal(t, models.Batch1, summary[0].Batch)
	assert.Equal(t, 2, summary[0].OrderCount)
	assert.Equal(t, 250000.0, summary[0].Revenue)

	assert.Equal(t, models.Batch2, summary[1].Batch)
	assert.Equal(t, 2, summary[1].OrderCount)
	assert.Equal(t, 150000.0, summary[1].Revenue)
}

func TestReportService_BatchSummary_EmptyStillListsBothBatches(t *testing.T) {
	f := newReportFixture(t)

	summary, err := f.service.BatchSummary(services.ReportFilter{})
	assert.NoError(t, err)
	assert.Len(t, summary, 2)
	assert.Equal(t, models.Batch1, summary[0].Batch)
	assert.Equal(t, models.Batch2, summary[1].Batch)
	assert.Equal(t, 0, summary[0].OrderCount)
	assert.Equal(t, 0, summary[1].OrderCount)
}
