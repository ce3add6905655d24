package storage

import (
	"context"
	"testing"
)

func TestMemoryStore_Contract(t *testing.T) {
	runBlobStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesBlobs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("abc")
	if err := s.Set(ctx, "k", data); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data[0] = 'x'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Stored blob changed with caller's slice: %s", got)
	}
	got[1] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Stored blob changed through returned slice: %s", again)
	}
}
