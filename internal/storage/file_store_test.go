package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_Contract(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	runBlobStoreContract(t, s)
}

func TestFileStore_WritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := s.Set(context.Background(), "pizza-pantry-inventory", []byte("[]")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	path := filepath.Join(dir, "pizza-pantry-inventory.json")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Blob file was not created: %v", err)
	}
	if string(content) != "[]" {
		t.Errorf("Unexpected file content %q", content)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Temporary file left behind: %v", err)
	}
}

func TestFileStore_ReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, _ := NewFileStore(dir)
	if err := first.Set(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	second, _ := NewFileStore(dir)
	got, err := second.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get on new store failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Expected persisted, got %s", got)
	}
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
