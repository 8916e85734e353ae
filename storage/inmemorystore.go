package storage

import (
	"fmt"
	"sync"
)

// InMemoryStore is a Store implementation powered by a map. All content is
// lost when the process exits, which is the point: it backs a disposable
// test double. The mutex makes Put and Get safe to call from concurrent
// request handlers.
type InMemoryStore struct {
	sync.Mutex
	m map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		m: make(map[string][]byte),
	}
}

func (s *InMemoryStore) Put(key, value []byte) (err error) {
	s.Lock()
	s.m[string(key)] = dup(value)
	s.Unlock()
	return nil
}

func (s *InMemoryStore) Get(key []byte) (value []byte, err error) {
	s.Lock()
	value, ok := s.m[string(key)]
	s.Unlock()
	if !ok {
		return nil, fmt.Errorf("%.40q: %w", key, ErrNotFound)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func dup(value []byte) []byte {
	duplicate := make([]byte, len(value))
	copy(duplicate, value)
	return duplicate
}
