package teststubs

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is the default fault returned by StubSubstrate.
var ErrInjected = errors.New("injected storage fault")

// StubSubstrate is an in-memory test double for store.Substrate with fault injection.
type StubSubstrate struct {
	mu     sync.Mutex
	values map[string]string

	// GetErr, SetErr and DeleteErr fail every call of that kind when set.
	GetErr    error
	SetErr    error
	DeleteErr error
	// FailSetKeys fails Set only for the listed keys.
	FailSetKeys map[string]error
	// FailDeleteKeys fails Delete only for the listed keys.
	FailDeleteKeys map[string]error
	// FailFirst fails the first N calls of any kind with ErrInjected.
	FailFirst int

	calls []string
}

// NewStubSubstrate returns an empty stub.
func NewStubSubstrate() *StubSubstrate {
	return &StubSubstrate{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (s *StubSubstrate) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "get "+key)
	if err := s.fault(ctx, s.GetErr, nil, key); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *StubSubstrate) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "set "+key)
	if err := s.fault(ctx, s.SetErr, s.FailSetKeys, key); err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *StubSubstrate) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "delete "+key)
	if err := s.fault(ctx, s.DeleteErr, s.FailDeleteKeys, key); err != nil {
		return err
	}
	delete(s.values, key)
	return nil
}

// Put seeds a raw value without recording a call.
func (s *StubSubstrate) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Value returns the raw stored value.
func (s *StubSubstrate) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Calls returns the recorded "op key" entries in call order.
func (s *StubSubstrate) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Reset clears recorded calls.
func (s *StubSubstrate) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *StubSubstrate) fault(ctx context.Context, opErr error, perKey map[string]error, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailFirst > 0 {
		s.FailFirst--
		return ErrInjected
	}
	if opErr != nil {
		return opErr
	}
	if err, ok := perKey[key]; ok {
		return err
	}
	return nil
}
