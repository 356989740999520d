package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/team-roster-service/internal/config"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
	"github.com/preston-bernstein/team-roster-service/internal/store"
)

var openBackend = selectBackend

// substrateFactory assembles the backend with shared wrappers (instrumentation + retry).
type substrateFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSubstrateFactory(logger *slog.Logger, metrics *metrics.Recorder) substrateFactory {
	return substrateFactory{logger: logger, metrics: metrics}
}

func (f substrateFactory) build(ctx context.Context, cfg config.StorageConfig) (store.Substrate, error) {
	base, err := openBackend(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return f.wrap(base, cfg), nil
}

// wrap instruments every attempt and retries outside the instrumentation so
// each attempt is counted.
func (f substrateFactory) wrap(base store.Substrate, cfg config.StorageConfig) store.Substrate {
	name := normalizeBackendName(cfg.Backend, base)
	instrumented := store.NewInstrumentedStore(base, f.logger, f.metrics, name)
	return store.NewRetryingStore(instrumented, f.logger, f.metrics, name, cfg.Retry.Attempts, cfg.Retry.Backoff)
}
