package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect selects the SQL flavour of a SQLStore.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DefaultBlobTable is the table SQLStore keeps blobs in.
const DefaultBlobTable = "pantry_blobs"

// SQLStore keeps blobs as rows of a two-column key/value table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	queries sqlQueries
}

type sqlQueries struct {
	create string
	get    string
	upsert string
	remove string
}

// NewSQLStore wraps an open connection pool. Call Migrate before first use.
func NewSQLStore(db *sql.DB, dialect Dialect, table string) (*SQLStore, error) {
	if table == "" {
		table = DefaultBlobTable
	}
	q, err := buildQueries(dialect, table)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, dialect: dialect, queries: q}, nil
}

func buildQueries(dialect Dialect, table string) (sqlQueries, error) {
	var q sqlQueries
	switch dialect {
	case DialectPostgres:
		q.create = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			blob_key VARCHAR(191) PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, table)
		q.get = fmt.Sprintf(`SELECT payload FROM %s WHERE blob_key = $1`, table)
		q.upsert = fmt.Sprintf(`INSERT INTO %s (blob_key, payload, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (blob_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, table)
		q.remove = fmt.Sprintf(`DELETE FROM %s WHERE blob_key = $1`, table)
	case DialectMySQL:
		q.create = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			blob_key VARCHAR(191) NOT NULL PRIMARY KEY,
			payload LONGTEXT NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`, table)
		q.get = fmt.Sprintf(`SELECT payload FROM %s WHERE blob_key = ?`, table)
		q.upsert = fmt.Sprintf(`INSERT INTO %s (blob_key, payload, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`, table)
		q.remove = fmt.Sprintf(`DELETE FROM %s WHERE blob_key = ?`, table)
	default:
		return q, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	return q, nil
}

// Dialect reports the flavour the store was built for.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Migrate creates the blob table when it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.queries.create); err != nil {
		return fmt.Errorf("creating blob table: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var payload string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return []byte(payload), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.queries.upsert, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.queries.remove, key); err != nil {
		return fmt.Errorf("removing blob %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
