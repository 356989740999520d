package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 100 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingStore retries failed substrate calls with linear backoff.
// Every substrate operation replaces or reads a whole value, so repeating one is safe.
type retryingStore struct {
	inner       Substrate
	logger      *slog.Logger
	metrics     *metrics.Recorder
	backend     string
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingStore wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingStore(inner Substrate, logger *slog.Logger, recorder *metrics.Recorder, backend string, maxAttempts int, backoff time.Duration) Substrate {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingStore{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		backend:     backend,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingStore) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := r.do(ctx, "get", key, func() error {
		var err error
		value, ok, err = r.inner.Get(ctx, key)
		return err
	})
	return value, ok, err
}

func (r *retryingStore) Set(ctx context.Context, key, value string) error {
	return r.do(ctx, "set", key, func() error {
		return r.inner.Set(ctx, key, value)
	})
}

func (r *retryingStore) Delete(ctx context.Context, key string) error {
	return r.do(ctx, "delete", key, func() error {
		return r.inner.Delete(ctx, key)
	})
}

func (r *retryingStore) Ping(ctx context.Context) error { return Ping(ctx, r.inner) }
func (r *retryingStore) Close() error                   { return Close(r.inner) }

func (r *retryingStore) do(ctx context.Context, op, key string, call func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxAttempts || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}

		r.metrics.RecordStorageRetry(r.backend, op)
		logging.Warn(ctx, r.logger, "storage op retry",
			"op", op, logging.FieldKey, key, logging.FieldBackend, r.backend,
			"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	return lastErr
}
