package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/storage"
)

func TestAuditRepository_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewAuditRepository(store)

	prev, next, adj := 10.0, 0.0, -15.0
	entries := []models.AuditLogEntry{
		{
			ID: "b", ItemID: "1", ItemName: "Flour", Action: models.AuditActionQuantityAdjusted,
			PreviousQuantity: &prev, NewQuantity: &next, Adjustment: &adj, Reason: "Spill",
			UserID: "1", UserName: "Admin User", Timestamp: time.Unix(200, 0).UTC(),
		},
		{
			ID: "a", ItemID: "1", ItemName: "Flour", Action: models.AuditActionCreated,
			UserID: "1", UserName: "Admin User", Timestamp: time.Unix(100, 0).UTC(), Details: "Created item: Flour",
		},
	}
	if err := repo.SaveEntries(ctx, entries); err != nil {
		t.Fatalf("SaveEntries failed: %v", err)
	}

	got, err := repo.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("Order not preserved: %+v", got)
	}
	if got[0].Adjustment == nil || *got[0].Adjustment != -15 {
		t.Errorf("Adjustment not preserved: %v", got[0].Adjustment)
	}
	if got[1].PreviousQuantity != nil {
		t.Errorf("Created entry should carry no quantities, got %v", *got[1].PreviousQuantity)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, AuditBlobKey); !errors.Is(err, storage.ErrBlobNotFound) {
		t.Errorf("Expected blob to be removed, got %v", err)
	}
	if _, err := repo.LoadEntries(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Clear, got %v", err)
	}
}
