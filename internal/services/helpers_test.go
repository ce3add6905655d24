package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pizza_pantry_backend/internal/repositories"
	"pizza_pantry_backend/internal/storage"
)

// fakeClock advances one second per call so timestamps are distinct.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// switchableStore fails reads or writes for one key on demand.
type switchableStore struct {
	*storage.MemoryStore
	mu        sync.Mutex
	failKey   string
	failGet   bool
	failSet   bool
	setCounts map[string]int
}

func newSwitchableStore() *switchableStore {
	return &switchableStore{MemoryStore: storage.NewMemoryStore(), setCounts: map[string]int{}}
}

func (s *switchableStore) fail(key string, get, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKey, s.failGet, s.failSet = key, get, set
}

func (s *switchableStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	failing := s.failGet && key == s.failKey
	s.mu.Unlock()
	if failing {
		return nil, fmt.Errorf("backend unavailable")
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *switchableStore) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	failing := s.failSet && key == s.failKey
	if !failing {
		s.setCounts[key]++
	}
	s.mu.Unlock()
	if failing {
		return fmt.Errorf("disk full")
	}
	return s.MemoryStore.Set(ctx, key, data)
}

func (s *switchableStore) sets(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCounts[key]
}

type testEnv struct {
	store    *switchableStore
	recorder *AuditRecorder
	items    *InventoryStore
	clock    *fakeClock
}

// newTestEnv wires a store and recorder over one blob store, without seed data.
func newTestEnv() *testEnv {
	blobs := newSwitchableStore()
	clock := newFakeClock()

	recorder := NewAuditRecorder(repositories.NewAuditRepository(blobs))
	recorder.now = clock.Now
	recorder.newID = sequentialIDs("audit")

	items := NewInventoryStore(repositories.NewInventoryRepository(blobs), recorder, nil)
	items.now = clock.Now
	items.newID = sequentialIDs("item")

	return &testEnv{store: blobs, recorder: recorder, items: items, clock: clock}
}
