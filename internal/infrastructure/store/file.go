package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/drinkslane/backend/internal/domain"
)

// FileSlot persists the cache slot as a single JSON file, the server-side
// analogue of the storefront's one-key browser storage.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the given file path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads the slot file. A missing file is ErrCacheMiss.
func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

// Store writes to a temp file and renames it over the slot, so readers
// never observe a torn entry.
func (s *FileSlot) Store(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the slot file; a missing file is already clear.
func (s *FileSlot) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
