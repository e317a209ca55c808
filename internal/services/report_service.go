package services

import (
	"errors"
	"sort"
	"time"

	"perdami/internal/models"
	"perdami/internal/repositories"
)

// reportedStatuses is the order set reports aggregate over: everything an
// admin has confirmed, up to and including completion. PENDING and
// CANCELLED orders carry no committed revenue.
var reportedStatuses = []models.OrderStatus{
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusReady,
	models.OrderStatusCompleted,
}

// ReportFilter narrows the aggregation window.
type ReportFilter struct {
	From    time.Time
	To      time.Time
	StoreID string // optional; restricts line items to one store
	TopN    int    // limit for per-bundle/per-store rollups, 0 = all
}

// BundleProfit is the per-bundle rollup row.
type BundleProfit struct {
	BundleID string  `json:"bundle_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Profit   float64 `json:"profit"`
}

// StoreProfit is the per-store rollup row.
type StoreProfit struct {
	StoreID string  `json:"store_id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// ProfitReport is the revenue/cost/profit aggregation over the filtered
// order set.
type ProfitReport struct {
	OrderCount        int            `json:"order_count"`
	SalesRevenue      float64        `json:"sales_revenue"`
	StoreCosts        float64        `json:"store_costs"`
	ServiceFeeRevenue float64        `json:"service_fee_revenue"`
	TotalIncome       float64        `json:"total_income"`
	NetProfit         float64        `json:"net_profit"`
	ProfitMargin      float64        `json:"profit_margin"`
	Bundles           []BundleProfit `json:"bundles"`
	Stores            []StoreProfit  `json:"stores"`
}

// BatchCount is one row of the batch summary.
type BatchCount struct {
	Batch      models.Batch `json:"batch"`
	OrderCount int          `json:"order_count"`
	Revenue    float64      `json:"revenue"`
}

// ReportService builds the admin revenue/cost/profit and batch reports.
type ReportService struct {
	orderRepo  repositories.OrderRepository
	bundleRepo repositories.BundleRepository
	storeRepo  repositories.StoreRepository
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository, bundleRepo repositories.BundleRepository,
	storeRepo repositories.StoreRepository) *ReportService {
	return &ReportService{
		orderRepo:  orderRepo,
		bundleRepo: bundleRepo,
		storeRepo:  storeRepo,
	}
}

// ProfitReport computes the revenue aggregation:
// sales revenue (what customers paid for items), store costs (what is owed
// to vendors), service fee revenue, and the resulting net profit and margin.
func (s *ReportService) ProfitReport(filter ReportFilter) (*ProfitReport, error) {
	orders, err := s.listOrders(filter)
	if err != nil {
		return nil, err
	}

	bundles, err := s.bundleIndex()
	if err != nil {
		return nil, err
	}
	storeNames, err := s.storeIndex()
	if err != nil {
		return nil, err
	}

	report := &ProfitReport{}
	bundleRollup := make(map[string]*BundleProfit)
	storeRollup := make(map[string]*StoreProfit)

	for _, order := range orders {
		matched := false
		for _, item := range order.Items {
			bundle, ok := bundles[item.BundleID]
			if !ok {
				// Bundle deleted since the order was placed; the price
				// snapshot still counts as revenue, cost is unknown.
				if filter.StoreID != "" {
					continue
				}
				report.SalesRevenue += item.TotalPrice
				matched = true
				continue
			}
			if filter.StoreID != "" && bundle.StoreID != filter.StoreID {
				continue
			}
			matched = true

			cost := bundle.CostPrice * float64(item.Quantity)
			report.SalesRevenue += item.TotalPrice
			report.StoreCosts += cost

			br, ok := bundleRollup[bundle.ID]
			if !ok {
				br = &BundleProfit{BundleID: bundle.ID, Name: bundle.Name}
				bundleRollup[bundle.ID] = br
			}
			br.Quantity += item.Quantity
			br.Revenue += item.TotalPrice
			br.Cost += cost
			br.Profit = br.Revenue - br.Cost

			sr, ok := storeRollup[bundle.StoreID]
			if !ok {
				sr = &StoreProfit{StoreID: bundle.StoreID, Name: storeNames[bundle.StoreID]}
				storeRollup[bundle.StoreID] = sr
			}
			sr.Revenue += item.TotalPrice
			sr.Cost += cost
			sr.Profit = sr.Revenue - sr.Cost
		}

		if matched {
			report.OrderCount++
			report.ServiceFeeRevenue += order.ServiceFee
		}
	}

	report.TotalIncome = report.SalesRevenue + report.ServiceFeeRevenue
	report.NetProfit = report.TotalIncome - report.StoreCosts
	if report.TotalIncome != 0 {
		report.ProfitMargin = report.NetProfit / report.TotalIncome
	}

	report.Bundles = topBundles(bundleRollup, filter.TopN)
	report.Stores = topStores(storeRollup, filter.TopN)
	return report, nil
}

// BatchSummary buckets the filtered orders into the two pickup batches by
// creation time. Both batches are always present in the result.
func (s *ReportService) BatchSummary(filter ReportFilter) ([]BatchCount, error) {
	orders, err := s.listOrders(filter)
	if err != nil {
		return nil, err
	}

	counts := map[models.Batch]*BatchCount{
		models.Batch1: {Batch: models.Batch1},
		models.Batch2: {Batch: models.Batch2},
	}
	for _, order := range orders {
		c := counts[order.Batch()]
		c.OrderCount++
		c.Revenue += order.TotalAmount
	}
	return []BatchCount{*counts[models.Batch1], *counts[models.Batch2]}, nil
}

func (s *ReportService) listOrders(filter ReportFilter) ([]models.Order, error) {
	repoFilter := repositories.OrderFilter{Statuses: reportedStatuses}
	if !filter.From.IsZero() {
		from := filter.From
		repoFilter.From = &from
	}
	if !filter.To.IsZero() {
		to := filter.To
		repoFilter.To = &to
	}
	return s.orderRepo.List(repoFilter)
}

func (s *ReportService) bundleIndex() (map[string]models.ProductBundle, error) {
	all, err := s.bundleRepo.GetAll()
	if err != nil {
		return nil, err
	}
	index := make(map[string]models.ProductBundle, len(all))
	for _, b := range all {
		index[b.ID] = b
	}
	return index, nil
}

func (s *ReportService) storeIndex() (map[string]string, error) {
	all, err := s.storeRepo.GetAll()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, st := range all {
		names[st.ID] = st.Name
	}
	return names, nil
}

func topBundles(rollup map[string]*BundleProfit, limit int) []BundleProfit {
	rows := make([]BundleProfit, 0, len(rollup))
	for _, r := range rollup {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Profit != rows[j].Profit {
			return rows[i].Profit > rows[j].Profit
		}
		return rows[i].BundleID < rows[j].BundleID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func topStores(rollup map[string]*StoreProfit, limit int) []StoreProfit {
	rows := make([]StoreProfit, 0, len(rollup))
	for _, r := range rollup {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Profit != rows[j].Profit {
			return rows[i].Profit > rows[j].Profit
		}
		return rows[i].StoreID < rows[j].StoreID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
