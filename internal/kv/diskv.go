package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/logger"
)

type diskStore struct {
	d   *diskv.Diskv
	log *logger.Logger
}

// NewDiskStore opens an on-disk store rooted at basePath. Keys containing
// path separators are fanned out into subdirectories.
func NewDiskStore(basePath string, log *logger.Logger) (Store, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = filepath.Join(".", "data", "kv")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, &apperr.PersistenceError{Op: "open", Err: err}
	}
	d := diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024,
	})
	return &diskStore{d: d, log: log.With("store", "DiskStore")}, nil
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKey(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, ":") + ":" + pk.FileName
}

func (s *diskStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &apperr.PersistenceError{Op: "get " + key, Err: err}
	}
	return val, true, nil
}

func (s *diskStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return &apperr.PersistenceError{Op: "set " + key, Err: err}
	}
	return nil
}

func (s *diskStore) Remove(ctx context.Context, key string) error {
	if err := s.d.Erase(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &apperr.PersistenceError{Op: "remove " + key, Err: err}
	}
	return nil
}
