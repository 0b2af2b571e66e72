package store

import (
	"fmt"

	"scalepos/domain"
)

// NewStore constructs a domain.BlobStore by kind: "memory" or "file".
// For file store, provide the data directory in dir; for memory, dir is ignored.
func NewStore(kind, dir string) (domain.BlobStore, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryStore(), nil
	case "file":
		if dir == "" {
			return nil, fmt.Errorf("data directory required for file store")
		}
		return NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}
