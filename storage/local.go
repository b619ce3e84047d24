package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStore implements Store on the local filesystem, rooted at the
// public-serving directory so stored variants are directly servable.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(absBase, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBase, err)
	}

	zap.L().Info("local storage initialized", zap.String("path", absBase))
	return &LocalStore{basePath: absBase}, nil
}

// resolve maps a key to an absolute path and rejects traversal outside the base
func (ls *LocalStore) resolve(key string) (string, error) {
	fullPath := filepath.Join(ls.basePath, filepath.Clean(filepath.FromSlash(key)))
	if !strings.HasPrefix(fullPath, ls.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid key '%s': resolves outside storage root", key)
	}
	return fullPath, nil
}

func (ls *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	fullPath, err := ls.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", key, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", key, err)
	}
	return nil
}

func (ls *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	fullPath, err := ls.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read '%s': %w", key, err)
	}
	return data, nil
}

func (ls *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := ls.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete '%s': %w", key, err)
	}
	return nil
}
