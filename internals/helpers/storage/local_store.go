package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps objects under Root on the local filesystem.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("storage: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &LocalStore{Root: abs}, nil
}

func (s *LocalStore) path(handle string) (string, error) {
	if !validHandle(handle) {
		return "", ErrInvalidHandle
	}
	return filepath.Join(s.Root, filepath.FromSlash(handle)), nil
}

func (s *LocalStore) Save(ctx context.Context, dir, filename, _ string, r io.Reader) (string, error) {
	return s.write(ctx, BuildKey(dir, filename), r, os.O_EXCL)
}

func (s *LocalStore) Put(ctx context.Context, key, _ string, r io.Reader) error {
	_, err := s.write(ctx, key, r, os.O_TRUNC)
	return err
}

func (s *LocalStore) write(ctx context.Context, key string, r io.Reader, mode int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|mode, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", key, err)
	}
	return key, nil
}

func (s *LocalStore) Open(_ context.Context, handle string) (io.ReadCloser, error) {
	full, err := s.path(handle)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *LocalStore) Delete(_ context.Context, handle string) error {
	full, err := s.path(handle)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
