package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateGroup  = errors.New("a group with this name already exists")
	ErrGroupNotFound   = errors.New("group not found")
	ErrDuplicatePlayer = errors.New("a player with this name already exists in the group")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidName     = errors.New("name must not be empty")
	ErrInvalidTeam     = errors.New("team must be one of the two group teams")
)

// StorageError wraps an I/O fault reported by the storage substrate.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	msg := "storage " + e.Op + " failed"
	if e.Key != "" {
		msg += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() error { return e.Err }

// CorruptDataError reports a stored value that does not match the expected schema.
type CorruptDataError struct {
	Key    string
	Reason string
	Err    error
}

func (e *CorruptDataError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unreadable record"
	}
	msg := "corrupt data"
	if e.Key != "" {
		msg += fmt.Sprintf(" (key=%s)", e.Key)
	}
	msg += ": " + reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// AsStorageError attempts to unwrap an error into a StorageError.
func AsStorageError(err error) (*StorageError, bool) {
	var sErr *StorageError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// AsCorruptDataError attempts to unwrap an error into a CorruptDataError.
func AsCorruptDataError(err error) (*CorruptDataError, bool) {
	var cErr *CorruptDataError
	if errors.As(err, &cErr) {
		return cErr, true
	}
	return nil, false
}

// IsKnown reports whether err belongs to the roster error taxonomy.
// Callers fall back to a generic message for anything else.
func IsKnown(err error) bool {
	if err == nil {
		return false
	}
	for _, sentinel := range []error{
		ErrDuplicateGroup,
		ErrGroupNotFound,
		ErrDuplicatePlayer,
		ErrPlayerNotFound,
		ErrInvalidName,
		ErrInvalidTeam,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	if _, ok := AsStorageError(err); ok {
		return true
	}
	_, ok := AsCorruptDataError(err)
	return ok
}
