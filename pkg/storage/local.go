package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Local writes uploads to a directory on disk, served statically under
// /uploads. File names are provided by the caller and overwritten in place,
// so re-uploading an avatar replaces the previous one.
type Local struct {
	root   string
	logger zerolog.Logger
}

// NewLocal creates the storage root if needed and returns the store.
func NewLocal(root string, logger zerolog.Logger) (*Local, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Local{
		root:   root,
		logger: logger.With().Str("component", "local_storage").Logger(),
	}, nil
}

// Root returns the directory files are written under.
func (l *Local) Root() string {
	return l.root
}

// Store writes the file and returns its name relative to the storage root.
// Subdirectories in the name are preserved; anything escaping the root is
// rejected.
func (l *Local) Store(ctx context.Context, name string, reader io.Reader) (string, error) {
	name = filepath.ToSlash(filepath.Clean(name))
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, "../") || filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid file name")
	}

	dst := filepath.Join(l.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	file, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	l.logger.Debug().Str("file", name).Msg("file stored on disk")
	return name, nil
}
