package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
)

type backendStats struct {
	calls         int
	errors        int
	retries       int
	lastOpLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about storage calls and
// roster mutations, mirrored to OTel instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*backendStats
	mutations map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*backendStats),
		mutations: make(map[string]int),
		otel:      otel,
	}
}

// RecordStorageOp counts a substrate call and stores its latency.
func (r *Recorder) RecordStorageOp(backend, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(backend)
	stats.calls++
	stats.lastOpLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStorageOp(backend, op, duration, err)
	}
}

// RecordStorageRetry counts a retried substrate call.
func (r *Recorder) RecordStorageRetry(backend, op string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(backend).retries++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStorageRetry(backend, op)
	}
}

// RecordRosterMutation counts a group or player mutation by outcome.
func (r *Recorder) RecordRosterMutation(op string, err error) {
	if r == nil {
		return
	}
	result := Result(err)

	r.mu.Lock()
	r.mutations[op+"/"+result]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRosterMutation(op, result)
	}
}

// Mutations returns how many op mutations ended with result.
func (r *Recorder) Mutations(op, result string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations[op+"/"+result]
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current stats for one backend.
type Snapshot struct {
	Calls         int
	Errors        int
	Retries       int
	LastOpLatency time.Duration
}

func (r *Recorder) Snapshot(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[backend]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:         stats.calls,
		Errors:        stats.errors,
		Retries:       stats.retries,
		LastOpLatency: stats.lastOpLatency,
	}
}

// Result classifies an outcome for the result attribute.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDuplicateGroup), errors.Is(err, domain.ErrDuplicatePlayer):
		return "duplicate"
	case errors.Is(err, domain.ErrGroupNotFound), errors.Is(err, domain.ErrPlayerNotFound):
		return "not_found"
	}
	if _, ok := domain.AsCorruptDataError(err); ok {
		return "corrupt"
	}
	if _, ok := domain.AsStorageError(err); ok {
		return "storage_error"
	}
	if errors.Is(err, domain.ErrInvalidName) || errors.Is(err, domain.ErrInvalidTeam) {
		return "invalid"
	}
	return "error"
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(backend string) *backendStats {
	stats, ok := r.stats[backend]
	if !ok {
		stats = &backendStats{}
		r.stats[backend] = stats
	}
	return stats
}
