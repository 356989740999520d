package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
)

// instrumentedStore records latency and outcome of every substrate call.
type instrumentedStore struct {
	inner   Substrate
	logger  *slog.Logger
	metrics *metrics.Recorder
	backend string
}

// NewInstrumentedStore wraps inner with metrics and debug logging.
func NewInstrumentedStore(inner Substrate, logger *slog.Logger, recorder *metrics.Recorder, backend string) Substrate {
	return &instrumentedStore{inner: inner, logger: logger, metrics: recorder, backend: backend}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.inner.Get(ctx, key)
	s.observe(ctx, "get", key, start, err, "found", ok)
	return value, ok, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.observe(ctx, "set", key, start, err, "bytes", len(value))
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe(ctx, "delete", key, start, err)
	return err
}

func (s *instrumentedStore) Ping(ctx context.Context) error { return Ping(ctx, s.inner) }
func (s *instrumentedStore) Close() error                   { return Close(s.inner) }

func (s *instrumentedStore) observe(ctx context.Context, op, key string, start time.Time, err error, args ...any) {
	duration := time.Since(start)
	s.metrics.RecordStorageOp(s.backend, op, duration, err)

	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return
	}
	args = append(args,
		slog.String("op", op),
		slog.String(logging.FieldKey, key),
		slog.String(logging.FieldBackend, s.backend),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	if err != nil {
		logger.WarnContext(ctx, "storage op failed", append(args, "error", err)...)
		return
	}
	logger.DebugContext(ctx, "storage op", args...)
}
