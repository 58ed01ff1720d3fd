// Package media stores uploaded images on disk under the media root.
package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxUploadBytes is the upload size ceiling (10 MiB).
const MaxUploadBytes = 10 << 20

// ErrNotAnImage is returned when an upload does not decode as a supported image.
var ErrNotAnImage = fmt.Errorf("file is not a supported image (jpeg, png, gif, webp)")

// Store writes uploaded files under a root directory with generated names.
type Store struct {
	root string
}

// NewStore creates the media root if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the store's base directory.
func (s *Store) Root() string {
	return s.root
}

// Save validates and writes an upload, returning the public /media/ path.
// The stored name is a fresh UUID plus the original extension, so uploads
// never collide and user-supplied names never touch the filesystem.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return "/media/" + name, nil
}

// Remove deletes a stored file given its public /media/ path. Missing
// files are ignored.
func (s *Store) Remove(publicPath string) error {
	name := filepath.Base(publicPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
