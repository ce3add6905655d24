package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/repositories"
	"pizza_pantry_backend/pkg/utils"

	"github.com/google/uuid"
)

// MaxAuditEntries caps the persisted audit trail. Older entries are dropped.
const MaxAuditEntries = 1000

// AuditLogger is the part of the recorder the inventory store depends on.
type AuditLogger interface {
	Append(ctx context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error)
}

// AuditRecorder keeps the append-only, most-recent-first audit trail.
// Every call reads the persisted log, so several processes sharing a blob
// store see each other's entries (last writer still wins).
type AuditRecorder struct {
	repo  repositories.AuditRepository
	mu    sync.Mutex
	limit int
	now   func() time.Time
	newID func() string
}

// NewAuditRecorder creates a recorder capped at MaxAuditEntries.
func NewAuditRecorder(repo repositories.AuditRepository) *AuditRecorder {
	return &AuditRecorder{
		repo:  repo,
		limit: MaxAuditEntries,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Append stamps entry with a fresh id and timestamp, puts it at the head of
// the log, truncates to the cap and persists the whole log.
// Caller-supplied id and timestamp are ignored.
func (r *AuditRecorder) Append(ctx context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return models.AuditLogEntry{}, err
	}

	entry.ID = r.newID()
	entry.Timestamp = r.now().UTC()

	trail := make([]models.AuditLogEntry, 0, len(entries)+1)
	trail = append(trail, entry)
	trail = append(trail, entries...)
	if len(trail) > r.limit {
		trail = trail[:r.limit]
	}

	if err := r.repo.SaveEntries(ctx, trail); err != nil {
		utils.LogError(err, "Failed to persist audit trail", map[string]interface{}{"item_id": entry.ItemID, "action": string(entry.Action)})
		return entry, storageError("saving audit trail", err)
	}
	return entry, nil
}

// GetAll returns the log, most recent first. Unreadable data yields an empty log.
func (r *AuditRecorder) GetAll(ctx context.Context) []models.AuditLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return []models.AuditLogEntry{}
	}
	return entries
}

// GetForItem returns the entries about one item in log order.
func (r *AuditRecorder) GetForItem(ctx context.Context, itemID string) []models.AuditLogEntry {
	out := []models.AuditLogEntry{}
	for _, e := range r.GetAll(ctx) {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out
}

// Search filters the log by action and by a case-insensitive term matched
// against item name, user name and reason.
func (r *AuditRecorder) Search(ctx context.Context, q models.AuditQuery) []models.AuditLogEntry {
	term := strings.TrimSpace(q.Search)
	out := []models.AuditLogEntry{}
	for _, e := range r.GetAll(ctx) {
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if term != "" && !utils.ContainsFold(e.ItemName, term) &&
			!utils.ContainsFold(e.UserName, term) && !utils.ContainsFold(e.Reason, term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear removes the persisted log.
func (r *AuditRecorder) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.Clear(ctx); err != nil {
		return storageError("clearing audit trail", err)
	}
	utils.LogInfo("Audit trail cleared")
	return nil
}

// load treats a missing or undecodable blob as an empty log. Store read
// failures are returned so a transient outage does not overwrite history.
func (r *AuditRecorder) load(ctx context.Context) ([]models.AuditLogEntry, error) {
	entries, err := r.repo.LoadEntries(ctx)
	switch {
	case err == nil:
		return entries, nil
	case errors.Is(err, repositories.ErrNotFound):
		return []models.AuditLogEntry{}, nil
	case errors.Is(err, repositories.ErrDecode):
		utils.LogWarn("Discarding unreadable audit trail", map[string]interface{}{"error": err.Error()})
		return []models.AuditLogEntry{}, nil
	}
	utils.LogError(err, "Failed to read audit trail")
	return nil, storageError("reading audit trail", err)
}
