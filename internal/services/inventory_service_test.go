package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/repositories"
)

var testActor = models.Actor{ID: "1", Name: "Admin User"}

// seedItems persists items directly and reloads the store.
func seedItems(t *testing.T, env *testEnv, items ...models.InventoryItem) {
	t.Helper()
	ctx := context.Background()
	if err := repositories.NewInventoryRepository(env.store).SaveItems(ctx, items); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if err := env.items.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func persistedItems(t *testing.T, env *testEnv) []models.InventoryItem {
	t.Helper()
	items, err := repositories.NewInventoryRepository(env.store).LoadItems(context.Background())
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	return items
}

func TestAdjustQuantity_ClampsAndRecordsRequestedDelta(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env, models.InventoryItem{ID: "1", Name: "Flour", Quantity: 10, ReorderThreshold: 5, Unit: "kg"})

	item, err := env.items.AdjustQuantity(ctx, testActor, "1", -15, "Spill")
	if err != nil {
		t.Fatalf("AdjustQuantity failed: %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("Expected quantity clamped to 0, got %v", item.Quantity)
	}
	if persisted := persistedItems(t, env); persisted[0].Quantity != 0 {
		t.Errorf("Expected persisted quantity 0, got %v", persisted[0].Quantity)
	}

	log := env.recorder.GetAll(ctx)
	if len(log) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(log))
	}
	e := log[0]
	if e.Action != models.AuditActionQuantityAdjusted || e.ItemID != "1" || e.ItemName != "Flour" {
		t.Errorf("Unexpected entry %+v", e)
	}
	if *e.PreviousQuantity != 10 || *e.NewQuantity != 0 || *e.Adjustment != -15 {
		t.Errorf("Expected 10 -> 0 by -15, got %v -> %v by %v", *e.PreviousQuantity, *e.NewQuantity, *e.Adjustment)
	}
	if e.Reason != "Spill" || e.UserID != testActor.ID || e.UserName != testActor.Name {
		t.Errorf("Unexpected reason or actor in %+v", e)
	}
}

func TestAdjustQuantity_ClampLaw(t *testing.T) {
	tests := []struct {
		start, adjustment, want float64
	}{
		{10, 5, 15},
		{10, -4, 6},
		{10, -10, 0},
		{0, -1, 0},
		{2.5, -0.5, 2},
		{3, -100, 0},
	}
	for _, tt := range tests {
		env := newTestEnv()
		seedItems(t, env, models.InventoryItem{ID: "x", Name: "Yeast", Quantity: tt.start})

		item, err := env.items.AdjustQuantity(context.Background(), testActor, "x", tt.adjustment, "count")
		if err != nil {
			t.Fatalf("AdjustQuantity failed: %v", err)
		}
		if item.Quantity != tt.want {
			t.Errorf("%v%+v: expected %v, got %v", tt.start, tt.adjustment, tt.want, item.Quantity)
		}
	}
}

func TestAddItem_RecordsCreatedEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	if err := env.items.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	item, err := env.items.AddItem(ctx, testActor, models.ItemInput{Name: "Flour", Category: "Dry Goods", Unit: "kg", Quantity: 0})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.ID == "" || item.CreatedAt.IsZero() || !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("Expected id and equal timestamps, got %+v", item)
	}
	if item.CreatedBy != testActor.ID {
		t.Errorf("Expected createdBy %s, got %s", testActor.ID, item.CreatedBy)
	}

	log := env.recorder.GetAll(ctx)
	if len(log) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(log))
	}
	if log[0].Action != models.AuditActionCreated || log[0].ItemID != item.ID || log[0].Details != "Created item: Flour" {
		t.Errorf("Unexpected entry %+v", log[0])
	}

	persisted := persistedItems(t, env)
	if len(persisted) != 1 || persisted[0].ID != item.ID {
		t.Errorf("Expected the item to be persisted, got %+v", persisted)
	}
}

func TestEditItem_ReplacesFieldsAndKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.Init(ctx)
	created, _ := env.items.AddItem(ctx, testActor, models.ItemInput{Name: "Flour", Category: "Dry Goods", Unit: "kg", Quantity: 5, Location: "Shelf 1"})

	edited, err := env.items.EditItem(ctx, testActor, created.ID, models.ItemInput{Name: "Bread Flour", Category: "Baking", Unit: "kg", Quantity: 7})
	if err != nil {
		t.Fatalf("EditItem failed: %v", err)
	}
	if edited.ID != created.ID || !edited.CreatedAt.Equal(created.CreatedAt) || edited.CreatedBy != created.CreatedBy {
		t.Errorf("Identity fields changed: %+v", edited)
	}
	if !edited.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("Expected updatedAt to advance")
	}
	if edited.Name != "Bread Flour" || edited.Quantity != 7 || edited.Location != "" {
		t.Errorf("Expected all mutable fields replaced, got %+v", edited)
	}

	log := env.recorder.GetAll(ctx)
	if log[0].Action != models.AuditActionUpdated || log[0].ItemName != "Bread Flour" {
		t.Errorf("Unexpected entry %+v", log[0])
	}
}

func TestMutations_UnknownIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env, models.InventoryItem{ID: "1", Name: "Flour", Quantity: 3})
	itemWrites := env.store.sets(repositories.InventoryBlobKey)

	_, delErr := env.items.DeleteItem(ctx, testActor, "missing")
	_, editErr := env.items.EditItem(ctx, testActor, "missing", models.ItemInput{Name: "x"})
	_, adjErr := env.items.AdjustQuantity(ctx, testActor, "missing", 1, "x")
	for _, err := range []error{delErr, editErr, adjErr} {
		if !errors.Is(err, ErrItemNotFound) || !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	}

	if got := env.store.sets(repositories.InventoryBlobKey); got != itemWrites {
		t.Errorf("Expected no item writes, got %d more", got-itemWrites)
	}
	if got := env.store.sets(repositories.AuditBlobKey); got != 0 {
		t.Errorf("Expected no audit writes, got %d", got)
	}
	items, _ := env.items.Items(ctx)
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Errorf("Collection changed: %+v", items)
	}
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env,
		models.InventoryItem{ID: "1", Name: "Flour"},
		models.InventoryItem{ID: "2", Name: "Basil"},
		models.InventoryItem{ID: "3", Name: "Salt"},
	)

	deleted, err := env.items.DeleteItem(ctx, testActor, "2")
	if err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if deleted.Name != "Basil" {
		t.Errorf("Expected Basil, got %s", deleted.Name)
	}

	persisted := persistedItems(t, env)
	if len(persisted) != 2 || persisted[0].ID != "1" || persisted[1].ID != "3" {
		t.Errorf("Expected insertion order kept without the deleted item, got %+v", persisted)
	}
	log := env.recorder.GetAll(ctx)
	if len(log) != 1 || log[0].Action != models.AuditActionDeleted || log[0].Details != "Deleted item: Basil" {
		t.Errorf("Unexpected audit log %+v", log)
	}
}

func TestInit_SeedsDemoData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.seed = DemoInventory()

	if err := env.items.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	persisted := persistedItems(t, env)
	if len(persisted) != len(DemoInventory()) {
		t.Fatalf("Expected %d seeded items, got %d", len(DemoInventory()), len(persisted))
	}
	for _, item := range persisted {
		if item.ID == "" || item.CreatedAt.IsZero() {
			t.Errorf("Seeded item missing id or timestamp: %+v", item)
		}
	}
	if n := len(env.recorder.GetAll(ctx)); n != 0 {
		t.Errorf("Seeding should not write audit entries, got %d", n)
	}
}

func TestInit_SeedsOverCorruptOrEmptyBlob(t *testing.T) {
	for name, blob := range map[string]string{"corrupt": "{{{", "empty": "[]"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv()
			env.items.seed = DemoInventory()
			_ = env.store.Set(ctx, repositories.InventoryBlobKey, []byte(blob))

			if err := env.items.Init(ctx); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			items, _ := env.items.Items(ctx)
			if len(items) != len(DemoInventory()) {
				t.Errorf("Expected demo data, got %d items", len(items))
			}
		})
	}
}

func TestInit_KeepsPersistedItems(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.seed = DemoInventory()
	seedItems(t, env, models.InventoryItem{ID: "only", Name: "Flour"})

	items, err := env.items.Items(ctx)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "only" {
		t.Errorf("Expected persisted items to win over the seed, got %+v", items)
	}
}

func TestInit_ReadFailure(t *testing.T) {
	env := newTestEnv()
	env.store.fail(repositories.InventoryBlobKey, true, false)

	if err := env.items.Init(context.Background()); !errors.Is(err, ErrStorage) {
		t.Errorf("Expected ErrStorage, got %v", err)
	}
}

func TestAddItem_PersistFailureKeepsMemoryAndAudit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.Init(ctx)
	env.store.fail(repositories.InventoryBlobKey, false, true)

	item, err := env.items.AddItem(ctx, testActor, models.ItemInput{Name: "Flour"})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}
	items, _ := env.items.Items(ctx)
	if len(items) != 1 || items[0].ID != item.ID {
		t.Errorf("Expected the in-memory change to stay, got %+v", items)
	}
	if n := len(env.recorder.GetAll(ctx)); n != 1 {
		t.Errorf("Expected the audit entry to be written, got %d", n)
	}
}

func TestAdjustQuantity_AuditFailureKeepsItemChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env, models.InventoryItem{ID: "1", Name: "Flour", Quantity: 4})
	env.store.fail(repositories.AuditBlobKey, false, true)

	_, err := env.items.AdjustQuantity(ctx, testActor, "1", 6, "Delivery")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}
	if persisted := persistedItems(t, env); persisted[0].Quantity != 10 {
		t.Errorf("Expected the item write to stand, got %v", persisted[0].Quantity)
	}
}

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env,
		models.InventoryItem{ID: "1", Name: "Flour"},
		models.InventoryItem{ID: "2", Name: "Basil"},
		models.InventoryItem{ID: "3", Name: "Salt"},
	)
	writesBefore := env.store.sets(repositories.InventoryBlobKey)

	result, err := env.items.BulkDelete(ctx, testActor, []string{"3", "nope", "1"})
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if len(result.Deleted) != 2 || len(result.Missing) != 1 || result.Missing[0] != "nope" {
		t.Errorf("Unexpected result %+v", result)
	}
	if got := env.store.sets(repositories.InventoryBlobKey) - writesBefore; got != 1 {
		t.Errorf("Expected a single collection write, got %d", got)
	}
	if persisted := persistedItems(t, env); len(persisted) != 1 || persisted[0].ID != "2" {
		t.Errorf("Unexpected remaining items %+v", persisted)
	}
	log := env.recorder.GetAll(ctx)
	if len(log) != 2 || log[0].Action != models.AuditActionDeleted {
		t.Errorf("Expected two deleted entries, got %+v", log)
	}

	result, err = env.items.BulkDelete(ctx, testActor, []string{"nope"})
	if err != nil || len(result.Deleted) != 0 {
		t.Errorf("Expected nothing deleted, got %+v, %v", result, err)
	}
}

func TestImportItems_AssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env, models.InventoryItem{ID: "1", Name: "Flour"})

	imported, err := env.items.ImportItems(ctx, testActor, []models.InventoryItem{
		{ID: "1", Name: "Duplicate id", Quantity: -3},
		{Name: "No id", Quantity: 2},
		{ID: "keep-me", Name: "Unique id"},
	})
	if err != nil {
		t.Fatalf("ImportItems failed: %v", err)
	}
	if len(imported) != 3 {
		t.Fatalf("Expected 3 imported, got %d", len(imported))
	}
	if imported[0].ID == "1" || imported[1].ID == "" || imported[2].ID != "keep-me" {
		t.Errorf("Unexpected ids %s, %s, %s", imported[0].ID, imported[1].ID, imported[2].ID)
	}
	if imported[0].Quantity != 0 {
		t.Errorf("Expected negative quantity clamped, got %v", imported[0].Quantity)
	}
	if imported[1].CreatedAt.IsZero() || imported[1].CreatedBy != testActor.ID {
		t.Errorf("Expected defaults filled in, got %+v", imported[1])
	}

	items, _ := env.items.Items(ctx)
	if len(items) != 4 {
		t.Errorf("Expected 4 items, got %d", len(items))
	}
	if n := len(env.recorder.GetAll(ctx)); n != 3 {
		t.Errorf("Expected 3 created entries, got %d", n)
	}
}

func TestListItems_FilterAndSort(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env,
		models.InventoryItem{ID: "1", Name: "flour", Category: "Dry Goods", Quantity: 30, ReorderThreshold: 10, Location: "Pantry"},
		models.InventoryItem{ID: "2", Name: "Basil", Category: "Produce", Quantity: 2, ReorderThreshold: 5, Location: "Cooler"},
		models.InventoryItem{ID: "3", Name: "Mozzarella", Category: "Dairy", Quantity: 0, ReorderThreshold: 4, Location: "Cooler"},
		models.InventoryItem{ID: "4", Name: "Salt", Category: "Dry Goods", Quantity: 5, ReorderThreshold: 1, Location: "Pantry"},
	)

	ids := func(items []models.InventoryItem) string {
		s := ""
		for _, i := range items {
			s += i.ID
		}
		return s
	}

	tests := []struct {
		name   string
		filter models.ItemFilter
		want   string
	}{
		{"default name asc, case-insensitive", models.ItemFilter{}, "2134"},
		{"name desc", models.ItemFilter{SortDirection: models.SortDesc}, "4312"},
		{"search category", models.ItemFilter{Search: "dry"}, "14"},
		{"search location", models.ItemFilter{Search: "COOLER"}, "23"},
		{"category", models.ItemFilter{Category: "Dry Goods", SortBy: models.SortByQuantity}, "41"},
		{"location", models.ItemFilter{Location: "Cooler"}, "23"},
		{"low stock", models.ItemFilter{Status: models.StockStatusLowStock}, "23"},
		{"out of stock", models.ItemFilter{Status: models.StockStatusOutOfStock}, "3"},
		{"in stock", models.ItemFilter{Status: models.StockStatusInStock}, "14"},
		{"quantity desc", models.ItemFilter{SortBy: models.SortByQuantity, SortDirection: models.SortDesc}, "1423"},
		{"category asc", models.ItemFilter{SortBy: models.SortByCategory}, "3142"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.items.ListItems(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListItems failed: %v", err)
			}
			if ids(got) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, ids(got))
			}
		})
	}
}

func TestCategories(t *testing.T) {
	env := newTestEnv()
	seedItems(t, env,
		models.InventoryItem{ID: "1", Category: "Produce"},
		models.InventoryItem{ID: "2", Category: "Dairy"},
		models.InventoryItem{ID: "3", Category: "Produce"},
	)

	got, err := env.items.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(got) != 2 || got[0] != "Dairy" || got[1] != "Produce" {
		t.Errorf("Unexpected categories %v", got)
	}
}

func TestQuantityOutOfRange_LeavesCollectionWritable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedItems(t, env, models.InventoryItem{ID: "1", Name: "Mozzarella", Quantity: MaxQuantity})

	if _, err := env.items.AdjustQuantity(ctx, testActor, "1", MaxQuantity, "Typo"); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity for overflowing adjustment, got %v", err)
	}
	if _, err := env.items.AdjustQuantity(ctx, testActor, "1", math.Inf(1), "Typo"); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity for infinite adjustment, got %v", err)
	}
	if _, err := env.items.AddItem(ctx, testActor, models.ItemInput{Name: "Salt", Quantity: 1e308}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity from AddItem, got %v", err)
	}
	if _, err := env.items.EditItem(ctx, testActor, "1", models.ItemInput{Name: "Mozzarella", ReorderThreshold: math.NaN()}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity from EditItem, got %v", err)
	}
	if _, err := env.items.ImportItems(ctx, testActor, []models.InventoryItem{{Name: "Yeast", Quantity: math.Inf(1)}}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity from ImportItems, got %v", err)
	}

	item, _ := env.items.GetItem(ctx, "1")
	if item.Quantity != MaxQuantity {
		t.Errorf("Expected quantity to stay %v, got %v", float64(MaxQuantity), item.Quantity)
	}
	if n := len(env.recorder.GetAll(ctx)); n != 0 {
		t.Errorf("Expected no audit entries for rejected changes, got %d", n)
	}

	if _, err := env.items.AddItem(ctx, testActor, models.ItemInput{Name: "Basil", Quantity: 2}); err != nil {
		t.Fatalf("Expected a later add to persist, got %v", err)
	}
	if persisted := persistedItems(t, env); len(persisted) != 2 {
		t.Errorf("Expected 2 persisted items, got %d", len(persisted))
	}
}
