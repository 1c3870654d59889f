package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no stored file has the requested name.
var ErrNotFound = errors.New("file not found")

// Storage keeps uploaded files under their client filename. A second
// upload with the same name replaces the first.
type Storage interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	Download(ctx context.Context, name string) ([]byte, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	// Location is where name is (or would be) stored.
	Location(name string) string
}

// validName rejects names that would escape the store.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
