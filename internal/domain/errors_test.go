package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStorageErrorStringAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "set", Key: "k", Err: cause}

	if got := err.Error(); !strings.Contains(got, "set") || !strings.Contains(got, "key=k") || !strings.Contains(got, "disk full") {
		t.Fatalf("unexpected error string %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected storage error to unwrap to cause")
	}

	wrapped := fmt.Errorf("create group: %w", err)
	sErr, ok := AsStorageError(wrapped)
	if !ok || sErr.Op != "set" {
		t.Fatalf("expected to unwrap storage error, got %+v", sErr)
	}
}

func TestCorruptDataErrorFallbackReason(t *testing.T) {
	err := &CorruptDataError{}
	if got := err.Error(); !strings.Contains(got, "unreadable record") {
		t.Fatalf("expected fallback reason, got %q", got)
	}
	if _, ok := AsCorruptDataError(fmt.Errorf("wrap: %w", err)); !ok {
		t.Fatalf("expected to unwrap corrupt data error")
	}
}

func TestIsKnown(t *testing.T) {
	known := []error{
		ErrDuplicateGroup,
		fmt.Errorf("ctx: %w", ErrGroupNotFound),
		ErrDuplicatePlayer,
		ErrPlayerNotFound,
		ErrInvalidName,
		ErrInvalidTeam,
		&StorageError{Op: "get"},
		fmt.Errorf("ctx: %w", &CorruptDataError{Key: "x"}),
	}
	for _, err := range known {
		if !IsKnown(err) {
			t.Fatalf("expected %v to be known", err)
		}
	}
	if IsKnown(nil) {
		t.Fatalf("nil must not be known")
	}
	if IsKnown(errors.New("boom")) {
		t.Fatalf("generic error must not be known")
	}
}
