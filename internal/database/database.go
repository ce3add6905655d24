package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pizza_pantry_backend/internal/config"
	"pizza_pantry_backend/internal/storage"
	"pizza_pantry_backend/pkg/utils"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// OpenSQL opens a pool for driverName and verifies it with a ping.
func OpenSQL(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", driverName, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s database: %w", driverName, err)
	}
	return db, nil
}

// OpenRedis connects a go-redis client and verifies it with a ping.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewBlobStore builds the blob store selected by cfg.StorageDriver.
// SQL stores are migrated before they are returned.
func NewBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		utils.LogWarn("Using in-memory storage; data is lost on restart")
		return storage.NewMemoryStore(), nil

	case config.DriverFile:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		utils.LogInfo("File storage ready", map[string]interface{}{"dir": store.Dir()})
		return store, nil

	case config.DriverPostgres:
		db, err := OpenSQL(ctx, "postgres", cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(ctx, db, storage.DialectPostgres)

	case config.DriverMySQL:
		db, err := OpenSQL(ctx, "mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(ctx, db, storage.DialectMySQL)

	case config.DriverRedis:
		client, err := OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		utils.LogInfo("Redis storage ready", map[string]interface{}{"addr": cfg.RedisAddr})
		return storage.NewRedisStore(client, cfg.BlobPrefix), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func newMigratedSQLStore(ctx context.Context, db *sql.DB, dialect storage.Dialect) (storage.BlobStore, error) {
	store, err := storage.NewSQLStore(db, dialect, storage.DefaultBlobTable)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not apply blob schema: %w", err)
	}
	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"dialect": string(dialect)})
	return store, nil
}
