package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type localStorage struct {
	dir string
}

// NewLocalStorage stores files in dir, creating it if needed.
func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Location(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *localStorage) Upload(_ context.Context, name string, data []byte, _ string) error {
	if !validName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.WriteFile(s.Location(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *localStorage) Download(_ context.Context, name string) ([]byte, error) {
	if !validName(name) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.Location(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *localStorage) Exists(_ context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	info, err := os.Stat(s.Location(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

func (s *localStorage) Delete(_ context.Context, name string) error {
	if !validName(name) {
		return ErrNotFound
	}
	err := os.Remove(s.Location(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
