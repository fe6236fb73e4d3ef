package snapshot

import (
	"context"
	"os"
)

// FileStore keeps the snapshot in a local JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file. A missing or empty file is ErrNoSnapshot.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

// Save overwrites the snapshot file.
func (s *FileStore) Save(ctx context.Context, payload []byte) error {
	return os.WriteFile(s.path, payload, 0o644)
}
