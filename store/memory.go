// Package store provides storage implementations for the point-of-sale system.
package store

import (
	"context"
	"sync"

	"scalepos/domain"
)

// MemoryStore is a thread-safe in-memory implementation of domain.BlobStore
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore constructs a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// compile-time assertion that MemoryStore implements domain.BlobStore
var _ domain.BlobStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := make([]byte, len(data))
	copy(b, data)
	s.blobs[key] = b
	return nil
}
