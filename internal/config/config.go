package config

import (
	"fmt"
	"time"

	"pizza_pantry_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
)

// DefaultJWTSecret is only suitable for local demos.
const DefaultJWTSecret = "pizza-pantry-demo-secret"

type Config struct {
	Port     string
	LogLevel string

	StorageDriver string
	DataDir       string
	BlobPrefix    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string
	SeedDemoData       bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     utils.Getenv("PORT", "8080"),
		LogLevel: utils.Getenv("LOG_LEVEL", "info"),

		StorageDriver: utils.Getenv("STORAGE_DRIVER", DriverFile),
		DataDir:       utils.Getenv("DATA_DIR", "./data"),
		BlobPrefix:    utils.Getenv("BLOB_PREFIX", ""),

		DBHost:     utils.Getenv("DB_HOST", "localhost"),
		DBPort:     utils.Getenv("DB_PORT", "5432"),
		DBUser:     utils.Getenv("DB_USER", "pizza_pantry"),
		DBPassword: utils.Getenv("DB_PASSWORD", "pizza_pantry"),
		DBName:     utils.Getenv("DB_NAME", "pizza_pantry"),
		DBSSLMode:  utils.Getenv("DB_SSLMODE", "disable"),

		MySQLDSN: utils.Getenv("MYSQL_DSN", "pizza_pantry:pizza_pantry@tcp(localhost:3306)/pizza_pantry?parseTime=true"),

		RedisAddr:     utils.Getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: utils.Getenv("REDIS_PASSWORD", ""),
		RedisDB:       utils.GetenvInt("REDIS_DB", 0),

		JWTSecret: utils.Getenv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    utils.GetenvDuration("JWT_TTL", utils.DefaultTokenTTL),

		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		SeedDemoData:       utils.GetenvBool("SEED_DEMO_DATA", true),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverPostgres, DriverMySQL, DriverRedis:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == DriverFile && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required for the file driver")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	return nil
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
