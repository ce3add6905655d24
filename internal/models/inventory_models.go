package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is one stocked product.
type InventoryItem struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Quantity         float64          `json:"quantity"`
	Unit             string           `json:"unit"`
	ReorderThreshold float64          `json:"reorderThreshold"` // minimum stock level
	CostPrice        *decimal.Decimal `json:"costPrice,omitempty"`
	Location         string           `json:"location,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Image            string           `json:"image,omitempty"`
	CreatedBy        string           `json:"createdBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// IsLowStock reports quantity < reorderThreshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity < i.ReorderThreshold
}

// IsOutOfStock reports an empty shelf regardless of threshold.
func (i InventoryItem) IsOutOfStock() bool {
	return i.Quantity <= 0
}

// StockValue is quantity × costPrice, zero when no cost is recorded.
func (i InventoryItem) StockValue() decimal.Decimal {
	if i.CostPrice == nil {
		return decimal.Zero
	}
	return i.CostPrice.Mul(decimal.NewFromFloat(i.Quantity))
}

// ItemInput carries the mutable fields of an item for add and edit.
// Binding rules mirror the item form; the store itself does not re-check them.
type ItemInput struct {
	Name             string           `json:"name" binding:"required,max=100"`
	Category         string           `json:"category" binding:"required,max=50"`
	Quantity         float64          `json:"quantity" binding:"gte=0,lte=1000000000"`
	Unit             string           `json:"unit" binding:"required,max=20"`
	ReorderThreshold float64          `json:"reorderThreshold" binding:"gte=0,lte=1000000000"`
	CostPrice        *decimal.Decimal `json:"costPrice,omitempty"`
	Location         string           `json:"location,omitempty" binding:"max=100"`
	Notes            string           `json:"notes,omitempty" binding:"max=500"`
	Image            string           `json:"image,omitempty" binding:"omitempty,url"`
}

// Apply overwrites every mutable field of item with the input.
// An empty image clears the stored one.
func (in ItemInput) Apply(item *InventoryItem) {
	item.Name = in.Name
	item.Category = in.Category
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.ReorderThreshold = in.ReorderThreshold
	item.CostPrice = in.CostPrice
	item.Location = in.Location
	item.Notes = in.Notes
	item.Image = strings.TrimSpace(in.Image)
}

// AdjustmentRequest is the payload of a quantity adjustment.
// `required` on a number rejects zero.
type AdjustmentRequest struct {
	Adjustment float64 `json:"adjustment" binding:"required,gte=-1000000000,lte=1000000000"`
	Reason     string  `json:"reason" binding:"required,max=200"`
}

// BulkDeleteRequest lists item ids to remove in one call.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteResult reports what was removed and which ids were unknown.
type BulkDeleteResult struct {
	Deleted []InventoryItem `json:"deleted"`
	Missing []string        `json:"missing,omitempty"`
}

// StockStatus values accepted by item filters.
type StockStatus string

const (
	StockStatusAll        StockStatus = "all"
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// SortField values accepted by item filters.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortByQuantity  SortField = "quantity"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ItemFilter narrows and orders the inventory table.
type ItemFilter struct {
	Search        string        `form:"search"`
	Category      string        `form:"category"`
	Location      string        `form:"location"`
	Status        StockStatus   `form:"status"`
	SortBy        SortField     `form:"sort_by"`
	SortDirection SortDirection `form:"sort_direction"`
}
