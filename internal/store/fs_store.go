package store

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

const (
	fsValueExt  = ".val"
	fsHashedExt = ".hval"
	// Keeps file names under the common 255-byte limit.
	fsMaxEncodedName = 200
)

// FSStore persists each key as one file under basePath.
// File names are the base64url form of the key, or its SHA-256 for long keys,
// so any key maps to a safe name.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a filesystem-backed store rooted at basePath.
func NewFSStore(basePath string) (*FSStore, error) {
	if basePath == "" {
		return nil, errors.New("fs store base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{basePath: basePath}, nil
}

// BasePath exposes the store root (primarily for testing).
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FSStore) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	if len(name) > fsMaxEncodedName {
		sum := sha256.Sum256([]byte(key))
		return filepath.Join(s.basePath, hex.EncodeToString(sum[:])+fsHashedExt)
	}
	return filepath.Join(s.basePath, name+fsValueExt)
}

// Get reads the file for key.
func (s *FSStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, errors.New("fs store not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value to a temp file and renames it over the target so readers
// never observe a partial value.
func (s *FSStore) Set(ctx context.Context, key, value string) error {
	if s == nil {
		return errors.New("fs store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := s.path(key)
	tmp, err := os.CreateTemp(s.basePath, filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes the file for key. Missing files are ignored.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	if s == nil {
		return errors.New("fs store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
