// Package storage provides the named-blob persistence primitive the pantry
// collections are written to. Each collection is stored whole under one key.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrBlobNotFound is returned by Get when nothing is stored under a key.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrInvalidKey is returned for empty or unsafe keys.
	ErrInvalidKey = errors.New("invalid blob key")
)

// BlobStore gets and sets opaque named blobs.
// Implementations replace the whole blob on Set; there is no partial update.
type BlobStore interface {
	// Get returns the blob stored under key or ErrBlobNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores data under key, replacing any previous blob.
	Set(ctx context.Context, key string, data []byte) error
	// Remove deletes the blob. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases connections or files held by the store.
	Close() error
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return ErrInvalidKey
		}
	}
	if key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
