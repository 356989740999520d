// Package records reads and writes the group index and rosters through the
// storage substrate. It owns the per-key locks shared by the group and player
// services so every read-modify-write on a key is serialized in-process.
package records

import (
	"context"

	"github.com/preston-bernstein/team-roster-service/internal/codec"
	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/players"
	"github.com/preston-bernstein/team-roster-service/internal/keylock"
	"github.com/preston-bernstein/team-roster-service/internal/keys"
	"github.com/preston-bernstein/team-roster-service/internal/store"
)

// Repo is the shared record access layer.
type Repo struct {
	sub   store.Substrate
	keys  keys.Scheme
	locks *keylock.Locker
}

// New constructs a Repo over sub using scheme for key names.
func New(sub store.Substrate, scheme keys.Scheme) *Repo {
	return &Repo{sub: sub, keys: scheme, locks: keylock.New()}
}

// LockIndex serializes access to the group index.
func (r *Repo) LockIndex(ctx context.Context) (func(), error) {
	return r.locks.Lock(ctx, r.keys.IndexKey())
}

// LockRoster serializes access to one group's roster.
func (r *Repo) LockRoster(ctx context.Context, group string) (func(), error) {
	return r.locks.Lock(ctx, r.keys.RosterKey(group))
}

// LoadIndex returns the group names in insertion order; a missing index is empty.
func (r *Repo) LoadIndex(ctx context.Context) ([]string, error) {
	key := r.keys.IndexKey()
	raw, ok, err := r.sub.Get(ctx, key)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return []string{}, nil
	}
	names, err := codec.DecodeIndex(raw)
	if err != nil {
		return nil, withKey(err, key)
	}
	return names, nil
}

// SaveIndex replaces the group index.
func (r *Repo) SaveIndex(ctx context.Context, names []string) error {
	key := r.keys.IndexKey()
	if err := r.sub.Set(ctx, key, codec.EncodeIndex(names)); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// LoadRoster returns a group's players in insertion order; a missing roster is empty.
func (r *Repo) LoadRoster(ctx context.Context, group string) ([]players.Player, error) {
	key := r.keys.RosterKey(group)
	raw, ok, err := r.sub.Get(ctx, key)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return []players.Player{}, nil
	}
	roster, err := codec.DecodeRoster(raw)
	if err != nil {
		return nil, withKey(err, key)
	}
	return roster, nil
}

// SaveRoster replaces a group's roster.
func (r *Repo) SaveRoster(ctx context.Context, group string, roster []players.Player) error {
	key := r.keys.RosterKey(group)
	if err := r.sub.Set(ctx, key, codec.EncodeRoster(roster)); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// DeleteRoster removes a group's roster record entirely.
func (r *Repo) DeleteRoster(ctx context.Context, group string) error {
	key := r.keys.RosterKey(group)
	if err := r.sub.Delete(ctx, key); err != nil {
		return &domain.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func withKey(err error, key string) error {
	if cErr, ok := domain.AsCorruptDataError(err); ok && cErr.Key == "" {
		cErr.Key = key
	}
	return err
}
