package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each slot in its own JSON file under a base directory.
// This is the default backend: zero external services, matches the
// local-device persistence model of the original application.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path maps a slot name to a file. Slot names contain ":" which is not
// filesystem-friendly everywhere, so it becomes "_".
func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(slot, ":", "_")+".json")
}

func (s *FileStore) Load(ctx context.Context, slot string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(slot))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, true, nil
}

func (s *FileStore) Save(ctx context.Context, slot string, data []byte) error {
	// Write-then-rename so a crash mid-write leaves the previous
	// snapshot intact rather than a truncated file.
	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, s.path(slot)); err != nil {
		return fmt.Errorf("commit slot %s: %w", slot, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, slot string) error {
	err := os.Remove(s.path(slot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}
