package repositories

import (
	"context"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/storage"
)

// AuditBlobKey names the blob holding the audit trail.
const AuditBlobKey = "pizza-pantry-audit-trail"

// AuditRepository persists the audit trail, most recent entry first.
type AuditRepository interface {
	LoadEntries(ctx context.Context) ([]models.AuditLogEntry, error)
	SaveEntries(ctx context.Context, entries []models.AuditLogEntry) error
	Clear(ctx context.Context) error
}

type auditRepository struct {
	entries jsonCollection[models.AuditLogEntry]
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(store storage.BlobStore) AuditRepository {
	return &auditRepository{entries: jsonCollection[models.AuditLogEntry]{store: store, key: AuditBlobKey}}
}

func (r *auditRepository) LoadEntries(ctx context.Context) ([]models.AuditLogEntry, error) {
	return r.entries.load(ctx)
}

func (r *auditRepository) SaveEntries(ctx context.Context, entries []models.AuditLogEntry) error {
	return r.entries.save(ctx, entries)
}

func (r *auditRepository) Clear(ctx context.Context) error {
	return r.entries.remove(ctx)
}
