package services

import (
	"pizza_pantry_backend/internal/models"

	"github.com/shopspring/decimal"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DemoInventory is the stock a fresh pantry starts with. Ids are assigned
// when it is seeded.
func DemoInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{Name: "Tipo 00 Flour", Category: "Dry Goods", Quantity: 45, Unit: "kg", ReorderThreshold: 20, CostPrice: price("1.80"), Location: "Dry Storage"},
		{Name: "Semolina", Category: "Dry Goods", Quantity: 8, Unit: "kg", ReorderThreshold: 10, CostPrice: price("2.10"), Location: "Dry Storage"},
		{Name: "Active Dry Yeast", Category: "Dry Goods", Quantity: 1.5, Unit: "kg", ReorderThreshold: 2, CostPrice: price("9.50"), Location: "Dry Storage"},
		{Name: "Sea Salt", Category: "Dry Goods", Quantity: 6, Unit: "kg", ReorderThreshold: 2, CostPrice: price("1.20"), Location: "Dry Storage"},
		{Name: "Fresh Mozzarella", Category: "Dairy", Quantity: 12, Unit: "kg", ReorderThreshold: 15, CostPrice: price("8.75"), Location: "Walk-in Cooler", Notes: "Use within 5 days of delivery"},
		{Name: "Parmigiano Reggiano", Category: "Dairy", Quantity: 4, Unit: "kg", ReorderThreshold: 2, CostPrice: price("18.40"), Location: "Walk-in Cooler"},
		{Name: "San Marzano Tomatoes", Category: "Canned Goods", Quantity: 36, Unit: "can", ReorderThreshold: 24, CostPrice: price("3.25"), Location: "Dry Storage"},
		{Name: "Extra Virgin Olive Oil", Category: "Oils", Quantity: 3, Unit: "L", ReorderThreshold: 5, CostPrice: price("11.00"), Location: "Prep Station"},
		{Name: "Pepperoni", Category: "Meats", Quantity: 7, Unit: "kg", ReorderThreshold: 5, CostPrice: price("12.60"), Location: "Walk-in Cooler"},
		{Name: "Italian Sausage", Category: "Meats", Quantity: 0, Unit: "kg", ReorderThreshold: 4, CostPrice: price("10.90"), Location: "Freezer"},
		{Name: "Fresh Basil", Category: "Produce", Quantity: 6, Unit: "bunch", ReorderThreshold: 8, CostPrice: price("1.75"), Location: "Walk-in Cooler"},
		{Name: "Cremini Mushrooms", Category: "Produce", Quantity: 5, Unit: "kg", ReorderThreshold: 3, CostPrice: price("6.30"), Location: "Walk-in Cooler"},
		{Name: "Pizza Boxes 12in", Category: "Packaging", Quantity: 250, Unit: "pcs", ReorderThreshold: 100, CostPrice: price("0.42"), Location: "Back Storage"},
	}
}
