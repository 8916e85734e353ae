package storage

import (
	"errors"
)

// Store represents a key-value store.
type Store interface {
	Put(key, value []byte) (err error)

	// Get should return ErrNotFound if the key is not in the store.
	Get(key []byte) (value []byte, err error)
}

var (
	// ErrNotFound indicates a key is not in the store.
	ErrNotFound = errors.New("not found")
)
