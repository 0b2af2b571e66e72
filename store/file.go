package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"scalepos/domain"
)

// FileStore is a file-backed implementation of domain.BlobStore. Each key
// is kept as its own file under the configured directory, written via a
// temp file and rename so a crash cannot leave a half-written blob.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// compile-time assertion
var _ domain.BlobStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			// no blob yet; that's fine
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
