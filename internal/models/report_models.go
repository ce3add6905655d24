package models

import "github.com/shopspring/decimal"

// CategoryTotal is the summed quantity of one category.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatusCount is one slice of the stock status chart.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardSummary backs the overview cards and charts.
type DashboardSummary struct {
	TotalItems    int             `json:"totalItems"`
	CategoryCount int             `json:"categoryCount"`
	LowStockCount int             `json:"lowStockCount"`
	InStockCount  int             `json:"inStockCount"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	ByCategory    []CategoryTotal `json:"byCategory"`
	StockStatus   []StatusCount   `json:"stockStatus"`
	LowStock      []LowStockAlert `json:"lowStock"`
}

// LowStockAlert pairs a low item with how full its shelf is, 0..100.
type LowStockAlert struct {
	Item       InventoryItem `json:"item"`
	Percentage float64       `json:"percentage"`
}
