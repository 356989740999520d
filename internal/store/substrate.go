package store

import "context"

// Substrate is the key to string persistence primitive the roster core reads
// and writes through. Get reports absence with ok=false and a nil error.
// Writes replace the whole value of a key atomically.
type Substrate interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by substrates backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it supports health checks and succeeds otherwise.
func Ping(ctx context.Context, s Substrate) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return ctx.Err()
}

// Close releases resources held by s when it holds any.
func Close(s Substrate) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
