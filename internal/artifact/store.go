package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is the injected persistence collaborator: get a blob by key or
// miss, put a blob with an optional time-to-live. Implementations decide
// whether ttl means anything (the filesystem and object stores ignore it).
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte, ttl time.Duration) error
}

// FSStore keeps artifacts as files under a root directory.
type FSStore struct {
	Root string
}

// NewFSStore creates the root directory if needed.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("artifact: create store dir %s: %w", root, err)
	}
	return &FSStore{Root: root}, nil
}

// Get reads the blob for key, reporting a miss for any read failure.
func (s *FSStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.Root, key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes the blob for key. The ttl is ignored; files live until
// replaced.
func (s *FSStore) Put(key string, data []byte, _ time.Duration) error {
	path := filepath.Join(s.Root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("artifact: mkdir for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", key, err)
	}
	return nil
}
