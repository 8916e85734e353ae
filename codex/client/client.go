// Package client implements an HTTP client for a mockodex server (or any
// service exposing the same two Codex data endpoints). It exists mostly
// for tests and demos that want to drive the mock without hand-rolling
// requests.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/nicolagi/mockodex/storage"
)

type options struct {
	address string
	client  *http.Client
}

type Option func(*options)

func WithAddress(value string) Option {
	return func(o *options) {
		o.address = value
	}
}

func WithHTTPClient(value *http.Client) Option {
	return func(o *options) {
		o.client = value
	}
}

// Client talks to the mock Codex API. It implements storage.BlobStore, so
// code written against the interface can transparently use a remote mock.
type Client struct {
	opts options
}

func New(opts ...Option) *Client {
	c := &Client{}
	c.opts.address = "127.0.0.1:8080"
	c.opts.client = http.DefaultClient
	for _, o := range opts {
		o(&c.opts)
	}
	return c
}

// Put uploads value and returns the content identifier assigned to it.
func (c *Client) Put(value []byte) (cid string, err error) {
	url := fmt.Sprintf("http://%s/api/codex/v1/data", c.opts.address)
	response, err := c.opts.client.Post(url, "application/octet-stream", bytes.NewReader(value))
	if response != nil && response.Body != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}
	if err != nil {
		return "", err
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("put: unexpected status %d", response.StatusCode)
	}
	var decoded struct {
		CID string `json:"cid"`
	}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.CID, nil
}

// Get downloads the content stored under cid. Returns an error wrapping
// storage.ErrNotFound if the server doesn't know the identifier.
func (c *Client) Get(cid string) (value []byte, err error) {
	url := fmt.Sprintf("http://%s/api/codex/v1/data/%s/network/stream", c.opts.address, cid)
	response, err := c.opts.client.Get(url)
	if response != nil && response.Body != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}
	if err != nil {
		return nil, err
	}
	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%q: %w", cid, storage.ErrNotFound)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get: unexpected status %d", response.StatusCode)
	}
	return ioutil.ReadAll(response.Body)
}

// Health hits the catch-all GET endpoint, which doubles as a health
// check, and verifies the server answers with its fixed status payload.
func (c *Client) Health() error {
	url := fmt.Sprintf("http://%s/", c.opts.address)
	response, err := c.opts.client.Get(url)
	if response != nil && response.Body != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("health: unexpected status %d", response.StatusCode)
	}
	var decoded struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return err
	}
	if decoded.Status != "ok" {
		return errors.New("health: unexpected status payload")
	}
	return nil
}
