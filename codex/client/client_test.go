package client_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/nicolagi/mockodex/codex/client"
	"github.com/nicolagi/mockodex/codex/server"
	"github.com/nicolagi/mockodex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	rand.Seed(time.Now().UnixNano())
	addr, cleanup := newDisposableServer(t)
	defer cleanup()
	c := client.New(client.WithAddress(addr))
	t.Run("health check", func(t *testing.T) {
		assert.Nil(t, c.Health())
	})
	t.Run("what you put is what you get", func(t *testing.T) {
		before := randomValue()
		cid, err := c.Put(before)
		require.Nil(t, err)
		after, err := c.Get(cid)
		assert.Nil(t, err)
		assert.Equal(t, before, after)
	})
	t.Run("put is idempotent", func(t *testing.T) {
		value := randomValue()
		cid1, err1 := c.Put(value)
		cid2, err2 := c.Put(value)
		assert.Nil(t, err1)
		assert.Nil(t, err2)
		assert.Equal(t, cid1, cid2)
	})
	t.Run("put matches the local identifier derivation", func(t *testing.T) {
		value := randomValue()
		cid, err := c.Put(value)
		require.Nil(t, err)
		assert.Equal(t, storage.CID(value), cid)
	})
	t.Run("get of an identifier never put", func(t *testing.T) {
		_, err := c.Get(storage.CID(randomValue()))
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
	t.Run("zero-length value round trips", func(t *testing.T) {
		cid, err := c.Put(nil)
		require.Nil(t, err)
		value, err := c.Get(cid)
		assert.Nil(t, err)
		assert.Len(t, value, 0)
	})
}

var _ storage.BlobStore = (*client.Client)(nil)

func newDisposableServer(t *testing.T) (addr string, cleanup func()) {
	t.Helper()
	srv := server.New(server.WithAddress("127.0.0.1:0"))
	addr, err := srv.Listen()
	require.Nil(t, err)
	srvc := make(chan struct{})
	go func() {
		assert.Nil(t, srv.Serve())
		close(srvc)
	}()
	return addr, func() {
		assert.Nil(t, srv.Shutdown())
		<-srvc
	}
}

func randomValue() []byte {
	value := make([]byte, 1+rand.Intn(512))
	rand.Read(value)
	return value
}
