package services

import (
	"context"
	"sort"

	"pizza_pantry_backend/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultLowStockAlerts is how many alerts the dashboard shows.
const DefaultLowStockAlerts = 5

// ItemSource supplies a snapshot of the collection.
type ItemSource interface {
	Items(ctx context.Context) ([]models.InventoryItem, error)
}

// ReportService computes dashboard aggregates over the current items.
type ReportService struct {
	items ItemSource
}

func NewReportService(items ItemSource) *ReportService {
	return &ReportService{items: items}
}

// Summary returns the overview cards and chart data.
func (s *ReportService) Summary(ctx context.Context) (models.DashboardSummary, error) {
	items, err := s.items.Items(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return BuildSummary(items), nil
}

// LowStock returns up to limit alerts, most urgent first. A non-positive
// limit returns every low item.
func (s *ReportService) LowStock(ctx context.Context, limit int) ([]models.LowStockAlert, error) {
	items, err := s.items.Items(ctx)
	if err != nil {
		return nil, err
	}
	return LowStockAlerts(items, limit), nil
}

func BuildSummary(items []models.InventoryItem) models.DashboardSummary {
	summary := models.DashboardSummary{
		TotalItems: len(items),
		TotalValue: decimal.Zero,
		ByCategory: []models.CategoryTotal{},
	}

	categoryIndex := make(map[string]int)
	for _, item := range items {
		if item.IsLowStock() {
			summary.LowStockCount++
		} else {
			summary.InStockCount++
		}
		summary.TotalQuantity += item.Quantity
		summary.TotalValue = summary.TotalValue.Add(item.StockValue())

		idx, ok := categoryIndex[item.Category]
		if !ok {
			idx = len(summary.ByCategory)
			categoryIndex[item.Category] = idx
			summary.ByCategory = append(summary.ByCategory, models.CategoryTotal{Name: item.Category})
		}
		summary.ByCategory[idx].Value += item.Quantity
	}
	summary.CategoryCount = len(summary.ByCategory)
	summary.StockStatus = []models.StatusCount{
		{Name: "In Stock", Value: summary.InStockCount},
		{Name: "Low Stock", Value: summary.LowStockCount},
	}
	summary.LowStock = LowStockAlerts(items, DefaultLowStockAlerts)
	return summary
}

// LowStockAlerts orders low items by quantity/threshold ascending.
func LowStockAlerts(items []models.InventoryItem, limit int) []models.LowStockAlert {
	alerts := []models.LowStockAlert{}
	for _, item := range items {
		if !item.IsLowStock() {
			continue
		}
		ratio := item.Quantity / item.ReorderThreshold
		pct := ratio * 100
		if pct > 100 {
			pct = 100
		}
		alerts = append(alerts, models.LowStockAlert{Item: cloneItem(item), Percentage: pct})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Percentage < alerts[j].Percentage
	})
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts
}
