package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store for tests. FailWrites and FailReads force
// the corresponding operations to fail so persistence-error paths can be
// exercised.
type MemoryStore struct {
	mu         sync.Mutex
	docs       map[string][]byte
	FailWrites error
	FailReads  error
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
	}
}

// Get retrieves the document stored under key.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}

	doc, ok := s.docs[key]
	if !ok {
		return nil, nil
	}

	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	s.docs[key] = cp
	return nil
}

// Delete removes the document stored under key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}

	delete(s.docs, key)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
