package store

import (
	"context"
	"errors"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/team-roster-service/internal/testutil"
)

type fakeRedis struct {
	values  map[string]string
	err     error
	pingErr error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := newRedisStore(fake, 0, nil)

	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected redis.Nil to map to absence, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("unexpected get result %q ok=%v err=%v", got, ok, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("expected delete of missing key to succeed, got %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if err := s.Close(); err != nil || !fake.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestRedisStorePropagatesAndLogsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	fake := newFakeRedis()
	fake.err = boom
	logger, buf := testutil.NewBufferLogger()
	s := newRedisStore(fake, time.Second, logger)

	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected get error, got %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("expected set error, got %v", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected delete error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected redis errors to be logged")
	}
}

func TestNewRedisStoreRequiresAddr(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), RedisOptions{}, nil); err == nil {
		t.Fatalf("expected error without address")
	}
}
