package storage

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fake content identifiers are a constant literal followed by a truncated
// hex digest. They look vaguely like CIDs but carry no multiformats
// encoding and cannot be verified against the content.
const (
	cidPrefix    = "bafy"
	cidDigestLen = 40
)

// BlobStore is a content-addressed store: the key for a value is derived
// from the value itself. Even if there are concurrent writes for the same
// key, those would write the same contents (with very high probability).
type BlobStore interface {
	Get(cid string) (value []byte, err error)
	Put(value []byte) (cid string, err error)
}

// CID derives the fake content identifier for value. Deterministic, but
// not a real content-addressing scheme: good enough to key a mock store,
// nothing more.
func CID(value []byte) string {
	sum := sha256.Sum256(value)
	return cidPrefix + hex.EncodeToString(sum[:])[:cidDigestLen]
}

// BlobStoreWrapper exposes a Store as a BlobStore, keying every value by
// its fake content identifier so content is never overwritten with
// different bytes.
type BlobStoreWrapper struct {
	delegate Store
}

func NewBlobStore(delegate Store) *BlobStoreWrapper {
	return &BlobStoreWrapper{
		delegate: delegate,
	}
}

func (s *BlobStoreWrapper) Put(value []byte) (cid string, err error) {
	cid = CID(value)
	err = s.delegate.Put([]byte(cid), value)
	return
}

func (s *BlobStoreWrapper) Get(cid string) (value []byte, err error) {
	return s.delegate.Get([]byte(cid))
}
