package services

import (
	"errors"
	"fmt"

	"pizza_pantry_backend/internal/repositories"
)

// --- Custom Service Errors ---
var (
	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = fmt.Errorf("inventory item %w", repositories.ErrNotFound)

	// ErrStorage wraps failures to read or write a persisted collection.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidImport is returned when an import payload cannot be parsed.
	ErrInvalidImport = errors.New("invalid import data")

	// ErrInvalidQuantity is returned for stock levels that are not finite or
	// exceed MaxQuantity. Nothing is changed when it is returned.
	ErrInvalidQuantity = errors.New("invalid quantity")

	ErrUserNotFound       = fmt.Errorf("user %w", repositories.ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
