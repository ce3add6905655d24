package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pizza_pantry_backend/internal/storage"
)

var (
	// ErrNotFound is returned when a specific record or blob is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrStorageError is returned for unexpected blob store errors.
	// It wraps the store's own error.
	ErrStorageError = errors.New("storage error")

	// ErrDecode is returned when a persisted blob is not valid JSON for its collection.
	ErrDecode = errors.New("persisted data could not be decoded")
)

// jsonCollection stores one slice of T as a JSON array under a single blob key.
type jsonCollection[T any] struct {
	store storage.BlobStore
	key   string
}

func (c jsonCollection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, c.key)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorageError, c.key, err)
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, c.key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c jsonCollection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrStorageError, c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageError, c.key, err)
	}
	return nil
}

func (c jsonCollection[T]) remove(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("%w: removing %s: %v", ErrStorageError, c.key, err)
	}
	return nil
}
