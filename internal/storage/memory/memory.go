// Package memory is an ephemeral blob store. Nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/avaforge-creator/subdrip/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	saves int
}

var _ storage.BlobStore = (*Store)(nil)

func New() *Store {
	return &Store{blobs: map[string][]byte{}}
}

// NewWithData seeds the store; the input map is copied.
func NewWithData(seed map[string][]byte) *Store {
	s := New()
	for k, v := range seed {
		s.blobs[k] = clone(v)
	}
	return s
}

// Load returns a copy of the blob under key.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(b), nil
}

// Save stores a copy of data under key.
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = clone(data)
	s.saves++
	return nil
}

// Saves counts successful writes. Tests use it to check that no-op
// mutations skip persistence.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
