package repositories

import (
	"context"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/storage"
)

// InventoryBlobKey names the blob holding the item collection.
const InventoryBlobKey = "pizza-pantry-inventory"

// InventoryRepository defines the persistence operations for the item collection.
// The whole collection is read and written at once.
type InventoryRepository interface {
	// LoadItems returns ErrNotFound when nothing was ever saved and ErrDecode
	// when the stored data is unreadable.
	LoadItems(ctx context.Context) ([]models.InventoryItem, error)
	SaveItems(ctx context.Context, items []models.InventoryItem) error
}

type inventoryRepository struct {
	items jsonCollection[models.InventoryItem]
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(store storage.BlobStore) InventoryRepository {
	return &inventoryRepository{items: jsonCollection[models.InventoryItem]{store: store, key: InventoryBlobKey}}
}

func (r *inventoryRepository) LoadItems(ctx context.Context) ([]models.InventoryItem, error) {
	return r.items.load(ctx)
}

func (r *inventoryRepository) SaveItems(ctx context.Context, items []models.InventoryItem) error {
	return r.items.save(ctx, items)
}
