package config

import "time"

const (
	envPort           = "PORT"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envStorageBackend = "STORAGE_BACKEND"
	envKeyPrefix      = "STORAGE_KEY_PREFIX"
	envFileDir        = "STORAGE_FILE_DIR"
	envRedisAddr      = "REDIS_ADDR"
	envRedisPassword  = "REDIS_PASSWORD"
	envRedisDB        = "REDIS_DB"
	envPostgresDSN    = "POSTGRES_DSN"
	envStorageTimeout = "STORAGE_TIMEOUT"
	envRetryAttempts  = "STORAGE_RETRY_ATTEMPTS"
	envRetryBackoff   = "STORAGE_RETRY_BACKOFF"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "team-roster-service"

	// Backend names accepted by STORAGE_BACKEND.
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	defaultBackend        = BackendMemory
	defaultFileDir        = "data/roster"
	defaultRedisAddr      = "localhost:6379"
	defaultStorageTimeout = 2 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBackoff   = 100 * time.Millisecond
)
