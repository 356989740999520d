package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageConfig selects and tunes the key-value substrate.
type StorageConfig struct {
	Backend   string
	KeyPrefix string
	FileDir   string
	Redis     RedisConfig
	Postgres  PostgresConfig
	Timeout   time.Duration // per-operation deadline for network backends
	Retry     RetryConfig
}

// RedisConfig holds go-redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds the pgx connection string.
type PostgresConfig struct {
	DSN string
}

// RetryConfig controls the substrate retry decorator. Attempts of 1 disables retrying.
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Backend:   strings.ToLower(strings.TrimSpace(envOrDefault(envStorageBackend, defaultBackend))),
		KeyPrefix: envOrDefault(envKeyPrefix, ""),
		FileDir:   envOrDefault(envFileDir, defaultFileDir),
		Redis: RedisConfig{
			Addr:     envOrDefault(envRedisAddr, defaultRedisAddr),
			Password: envOrDefault(envRedisPassword, ""),
			DB:       intEnvOrDefault(envRedisDB, 0),
		},
		Postgres: PostgresConfig{DSN: envOrDefault(envPostgresDSN, "")},
		Timeout:  durationEnvOrDefault(envStorageTimeout, defaultStorageTimeout),
		Retry: RetryConfig{
			Attempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
			Backoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		},
	}
}

// Validate reports settings the selected backend cannot start with.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if strings.TrimSpace(c.FileDir) == "" {
			return fmt.Errorf("%s is required for the file backend", envFileDir)
		}
		return nil
	case BackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("%s is required for the redis backend", envRedisAddr)
		}
		return nil
	case BackendPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres backend", envPostgresDSN)
		}
		return nil
	default:
		return fmt.Errorf("unknown %s %q", envStorageBackend, c.Backend)
	}
}
