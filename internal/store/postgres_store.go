package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPostgresTimeout = 5 * time.Second

const (
	sqlCreateTable = `CREATE TABLE IF NOT EXISTS roster_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	sqlGet    = `SELECT value FROM roster_kv WHERE key = $1`
	sqlUpsert = `INSERT INTO roster_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	sqlDelete = `DELETE FROM roster_kv WHERE key = $1`
)

// pgPool is the subset of *pgxpool.Pool the store relies on.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore keeps keys as rows of the roster_kv table.
type PostgresStore struct {
	pool    pgPool
	logger  *slog.Logger
	timeout time.Duration
}

// NewPostgresStore opens a pool for dsn, verifies it and creates the table when missing.
func NewPostgresStore(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := newPostgresStore(pool, timeout, logger)
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func newPostgresStore(pool pgPool, timeout time.Duration, logger *slog.Logger) *PostgresStore {
	if timeout <= 0 {
		timeout = defaultPostgresTimeout
	}
	return &PostgresStore{pool: pool, logger: logger, timeout: timeout}
}

// EnsureSchema creates the key/value table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.pool.Exec(ctx, sqlCreateTable)
	return err
}

// Get reads the value for key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var value string
	err := s.pool.QueryRow(ctx, sqlGet, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logPgError("get", err)
		return "", false, err
	}
	return value, true, nil
}

// Set upserts value for key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, sqlUpsert, key, value); err != nil {
		s.logPgError("set", err)
		return err
	}
	return nil
}

// Delete removes the row for key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, sqlDelete, key); err != nil {
		s.logPgError("delete", err)
		return err
	}
	return nil
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) logPgError(op string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error("postgres store error", "op", op, "error", err)
}
