package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/team-roster-service/internal/config"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
	"github.com/preston-bernstein/team-roster-service/internal/store"
	"github.com/preston-bernstein/team-roster-service/internal/teststubs"
)

func TestSubstrateFactoryRetriesAndCountsEachAttempt(t *testing.T) {
	stub := teststubs.NewStubSubstrate()
	stub.FailFirst = 2

	orig := openBackend
	defer func() { openBackend = orig }()
	openBackend = func(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Substrate, error) {
		return stub, nil
	}

	rec := metrics.NewRecorder()
	cfg := config.StorageConfig{
		Backend: "stub",
		Retry:   config.RetryConfig{Attempts: 3, Backoff: time.Millisecond},
	}
	sub, err := newSubstrateFactory(nil, rec).build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if err := sub.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}

	snap := rec.Snapshot("stub")
	if snap.Calls != 3 || snap.Errors != 2 || snap.Retries != 2 {
		t.Fatalf("unexpected stats %+v", snap)
	}
}

func TestSubstrateFactoryWrapsOpenError(t *testing.T) {
	orig := openBackend
	defer func() { openBackend = orig }()
	openBackend = func(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Substrate, error) {
		return nil, errors.New("dial tcp: refused")
	}

	_, err := newSubstrateFactory(nil, nil).build(context.Background(), config.StorageConfig{Backend: config.BackendRedis})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestSelectBackend(t *testing.T) {
	ctx := context.Background()

	sub, err := selectBackend(ctx, config.StorageConfig{Backend: config.BackendMemory}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sub.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", sub)
	}

	sub, err = selectBackend(ctx, config.StorageConfig{Backend: config.BackendFile, FileDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sub.(*store.FSStore); !ok {
		t.Fatalf("expected fs store, got %T", sub)
	}

	if _, err := selectBackend(ctx, config.StorageConfig{Backend: config.BackendPostgres}, nil); err == nil {
		t.Fatalf("expected validation error for postgres without dsn")
	}
}

func TestNormalizeBackendName(t *testing.T) {
	if got := normalizeBackendName("Redis", nil); got != "redis" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
	if got := normalizeBackendName("", store.NewMemoryStore()); got != "memorystore" {
		t.Fatalf("expected derived name, got %s", got)
	}
	if got := normalizeBackendName("", nil); got != "substrate" {
		t.Fatalf("expected fallback name, got %s", got)
	}
}
