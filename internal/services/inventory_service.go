package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/repositories"
	"pizza_pantry_backend/pkg/utils"

	"github.com/google/uuid"
)

// InventoryStore owns the item collection. Every successful mutation writes
// the whole collection back and then hands an audit entry to the recorder.
// The two writes are independent: a failed audit write never undoes an item
// change, and a failed item write is not rolled back in memory.
type InventoryStore struct {
	repo  repositories.InventoryRepository
	audit AuditLogger
	seed  []models.InventoryItem

	mu     sync.Mutex
	items  []models.InventoryItem
	loaded bool

	now   func() time.Time
	newID func() string
}

// NewInventoryStore creates a store. seed is written when the persisted
// collection is missing, unreadable or empty; pass nil to start empty.
func NewInventoryStore(repo repositories.InventoryRepository, audit AuditLogger, seed []models.InventoryItem) *InventoryStore {
	return &InventoryStore{
		repo:  repo,
		audit: audit,
		seed:  seed,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Init loads the persisted collection. Calling it again reloads from storage.
func (s *InventoryStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *InventoryStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

func (s *InventoryStore) load(ctx context.Context) error {
	items, err := s.repo.LoadItems(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		items = nil
	case errors.Is(err, repositories.ErrDecode):
		utils.LogWarn("Persisted inventory is unreadable, starting over", map[string]interface{}{"error": err.Error()})
		items = nil
	default:
		utils.LogError(err, "Failed to load inventory")
		return storageError("loading inventory", err)
	}

	if len(items) == 0 && len(s.seed) > 0 {
		now := s.now().UTC()
		items = make([]models.InventoryItem, len(s.seed))
		for i, item := range s.seed {
			item = cloneItem(item)
			if item.ID == "" {
				item.ID = s.newID()
			}
			item.CreatedAt, item.UpdatedAt = now, now
			items[i] = item
		}
		s.items = items
		s.loaded = true
		utils.LogInfo("Seeding demo inventory", map[string]interface{}{"items": len(items)})
		return s.persist(ctx)
	}

	if items == nil {
		items = []models.InventoryItem{}
	}
	s.items = items
	s.loaded = true
	utils.LogDebug("Inventory loaded", map[string]interface{}{"items": len(items)})
	return nil
}

func (s *InventoryStore) persist(ctx context.Context) error {
	if err := s.repo.SaveItems(ctx, s.items); err != nil {
		utils.LogError(err, "Failed to persist inventory", map[string]interface{}{"items": len(s.items)})
		return storageError("saving inventory", err)
	}
	return nil
}

func (s *InventoryStore) record(ctx context.Context, entry models.AuditLogEntry) error {
	if s.audit == nil {
		return nil
	}
	_, err := s.audit.Append(ctx, entry)
	return err
}

func (s *InventoryStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem creates an item from input, persists the collection and records a
// created entry. Form rules are left to callers; only out-of-range stock
// levels are rejected here.
func (s *InventoryStore) AddItem(ctx context.Context, actor models.Actor, input models.ItemInput) (models.InventoryItem, error) {
	if err := checkLevels(input.Quantity, input.ReorderThreshold); err != nil {
		return models.InventoryItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.InventoryItem{}, err
	}

	now := s.now().UTC()
	item := models.InventoryItem{
		ID:        s.newID(),
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.Apply(&item)
	s.items = append(s.items, item)

	saveErr := s.persist(ctx)
	auditErr := s.record(ctx, models.AuditLogEntry{
		ItemID:   item.ID,
		ItemName: item.Name,
		Action:   models.AuditActionCreated,
		UserID:   actor.ID,
		UserName: actor.Name,
		Details:  "Created item: " + item.Name,
	})
	return cloneItem(item), errors.Join(saveErr, auditErr)
}

// EditItem replaces every mutable field of the item. Unknown ids return
// ErrItemNotFound and leave both collections untouched.
func (s *InventoryStore) EditItem(ctx context.Context, actor models.Actor, id string, input models.ItemInput) (models.InventoryItem, error) {
	if err := checkLevels(input.Quantity, input.ReorderThreshold); err != nil {
		return models.InventoryItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.InventoryItem{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	item := s.items[idx]
	input.Apply(&item)
	item.UpdatedAt = s.now().UTC()
	s.items[idx] = item

	saveErr := s.persist(ctx)
	auditErr := s.record(ctx, models.AuditLogEntry{
		ItemID:   item.ID,
		ItemName: item.Name,
		Action:   models.AuditActionUpdated,
		UserID:   actor.ID,
		UserName: actor.Name,
		Details:  "Updated item: " + item.Name,
	})
	return cloneItem(item), errors.Join(saveErr, auditErr)
}

// DeleteItem removes the item and returns it. Unknown ids return
// ErrItemNotFound and write nothing.
func (s *InventoryStore) DeleteItem(ctx context.Context, actor models.Actor, id string) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.InventoryItem{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	item := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)

	saveErr := s.persist(ctx)
	auditErr := s.record(ctx, deletedEntry(actor, item))
	return item, errors.Join(saveErr, auditErr)
}

// AdjustQuantity adds adjustment to the item's quantity, clamping at zero.
// The audit entry keeps the requested adjustment even when the result was clamped.
func (s *InventoryStore) AdjustQuantity(ctx context.Context, actor models.Actor, id string, adjustment float64, reason string) (models.InventoryItem, error) {
	if math.IsNaN(adjustment) || math.Abs(adjustment) > MaxQuantity {
		return models.InventoryItem{}, fmt.Errorf("%w: adjustment %v", ErrInvalidQuantity, adjustment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.InventoryItem{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	item := s.items[idx]
	previous := item.Quantity
	next := ClampQuantity(previous + adjustment)
	if next > MaxQuantity {
		return models.InventoryItem{}, fmt.Errorf("%w: %v exceeds %v", ErrInvalidQuantity, next, float64(MaxQuantity))
	}
	item.Quantity = next
	item.UpdatedAt = s.now().UTC()
	s.items[idx] = item

	saveErr := s.persist(ctx)
	auditErr := s.record(ctx, models.AuditLogEntry{
		ItemID:           item.ID,
		ItemName:         item.Name,
		Action:           models.AuditActionQuantityAdjusted,
		PreviousQuantity: &previous,
		NewQuantity:      &next,
		Adjustment:       &adjustment,
		Reason:           reason,
		UserID:           actor.ID,
		UserName:         actor.Name,
	})
	return cloneItem(item), errors.Join(saveErr, auditErr)
}

// MaxQuantity bounds every stock level and adjustment, keeping collection
// totals finite.
const MaxQuantity = 1e9

// checkLevels rejects quantities the collection could not be saved with.
// Negative values are left to ClampQuantity.
func checkLevels(levels ...float64) error {
	for _, q := range levels {
		if math.IsNaN(q) || q > MaxQuantity {
			return fmt.Errorf("%w: %v", ErrInvalidQuantity, q)
		}
	}
	return nil
}

// ClampQuantity keeps stock levels non-negative.
func ClampQuantity(q float64) float64 {
	if q < 0 {
		return 0
	}
	return q
}

// BulkDelete removes every known id with a single collection write and one
// deleted entry per removed item. Unknown ids are reported, not fatal.
func (s *InventoryStore) BulkDelete(ctx context.Context, actor models.Actor, ids []string) (models.BulkDeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := models.BulkDeleteResult{Deleted: []models.InventoryItem{}}
	if err := s.ensureLoaded(ctx); err != nil {
		return result, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	kept := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if wanted[item.ID] {
			result.Deleted = append(result.Deleted, item)
			delete(wanted, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	for _, id := range ids {
		if wanted[id] {
			result.Missing = append(result.Missing, id)
			delete(wanted, id)
		}
	}
	if len(result.Deleted) == 0 {
		return result, nil
	}
	s.items = kept

	errs := []error{s.persist(ctx)}
	for _, item := range result.Deleted {
		errs = append(errs, s.record(ctx, deletedEntry(actor, item)))
	}
	return result, errors.Join(errs...)
}

// ImportItems appends items to the collection. Items without an id, or whose
// id is already taken, get a new one. Negative levels are clamped to zero.
func (s *InventoryStore) ImportItems(ctx context.Context, actor models.Actor, items []models.InventoryItem) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.InventoryItem{}, nil
	}
	for _, item := range items {
		if err := checkLevels(item.Quantity, item.ReorderThreshold); err != nil {
			return nil, fmt.Errorf("importing %q: %w", item.Name, err)
		}
	}

	taken := make(map[string]bool, len(s.items)+len(items))
	for _, item := range s.items {
		taken[item.ID] = true
	}

	now := s.now().UTC()
	imported := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		item = cloneItem(item)
		if item.ID == "" || taken[item.ID] {
			item.ID = s.newID()
		}
		taken[item.ID] = true
		item.Quantity = ClampQuantity(item.Quantity)
		item.ReorderThreshold = ClampQuantity(item.ReorderThreshold)
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = now
		}
		if item.CreatedBy == "" {
			item.CreatedBy = actor.ID
		}
		imported = append(imported, item)
	}
	s.items = append(s.items, imported...)

	errs := []error{s.persist(ctx)}
	for _, item := range imported {
		errs = append(errs, s.record(ctx, models.AuditLogEntry{
			ItemID:   item.ID,
			ItemName: item.Name,
			Action:   models.AuditActionCreated,
			UserID:   actor.ID,
			UserName: actor.Name,
			Details:  "Imported item: " + item.Name,
		}))
	}
	utils.LogInfo("Inventory imported", map[string]interface{}{"items": len(imported), "user_id": actor.ID})
	return cloneItems(imported), errors.Join(errs...)
}

// GetItem returns one item by id.
func (s *InventoryStore) GetItem(ctx context.Context, id string) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.InventoryItem{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return cloneItem(s.items[idx]), nil
}

// Items returns a copy of the collection in insertion order.
func (s *InventoryStore) Items(ctx context.Context) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneItems(s.items), nil
}

// Categories returns the distinct categories, sorted.
func (s *InventoryStore) Categories(ctx context.Context) ([]string, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, item := range items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListItems filters and sorts the collection for the inventory table.
// The default order is name ascending.
func (s *InventoryStore) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.InventoryItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	return FilterItems(items, filter), nil
}

// FilterItems applies filter to items without touching the store.
func FilterItems(items []models.InventoryItem, filter models.ItemFilter) []models.InventoryItem {
	search := strings.TrimSpace(filter.Search)
	out := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if search != "" && !utils.ContainsFold(item.Name, search) &&
			!utils.ContainsFold(item.Category, search) && !utils.ContainsFold(item.Location, search) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Location != "" && item.Location != filter.Location {
			continue
		}
		if !matchesStatus(item, filter.Status) {
			continue
		}
		out = append(out, item)
	}

	less := itemLess(filter.SortBy)
	desc := filter.SortDirection == models.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func matchesStatus(item models.InventoryItem, status models.StockStatus) bool {
	switch status {
	case models.StockStatusInStock:
		return !item.IsLowStock()
	case models.StockStatusLowStock:
		return item.IsLowStock()
	case models.StockStatusOutOfStock:
		return item.IsOutOfStock()
	}
	return true
}

func itemLess(field models.SortField) func(a, b models.InventoryItem) bool {
	switch field {
	case models.SortByCategory:
		return func(a, b models.InventoryItem) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case models.SortByQuantity:
		return func(a, b models.InventoryItem) bool { return a.Quantity < b.Quantity }
	case models.SortByUpdatedAt:
		return func(a, b models.InventoryItem) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	return func(a, b models.InventoryItem) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

func deletedEntry(actor models.Actor, item models.InventoryItem) models.AuditLogEntry {
	return models.AuditLogEntry{
		ItemID:   item.ID,
		ItemName: item.Name,
		Action:   models.AuditActionDeleted,
		UserID:   actor.ID,
		UserName: actor.Name,
		Details:  "Deleted item: " + item.Name,
	}
}

func cloneItem(item models.InventoryItem) models.InventoryItem {
	if item.CostPrice != nil {
		cost := *item.CostPrice
		item.CostPrice = &cost
	}
	return item
}

func cloneItems(items []models.InventoryItem) []models.InventoryItem {
	out := make([]models.InventoryItem, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}
