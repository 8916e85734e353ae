package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net"
	"net/http"
	"strings"

	"github.com/nicolagi/mockodex/storage"
	log "github.com/sirupsen/logrus"
)

// Paths of the two data endpoints being mimicked. The retrieval path
// embeds the content identifier between the prefix and the suffix.
const (
	ingestPath     = "/api/codex/v1/data"
	retrievePrefix = "/api/codex/v1/data/"
	retrieveSuffix = "/network/stream"
)

type ingestResponse struct {
	CID string `json:"cid"`
}

type Option func(*options)

type options struct {
	address string
	store   storage.BlobStore
}

func WithAddress(value string) Option {
	return func(o *options) {
		o.address = value
	}
}

func WithBlobStore(value storage.BlobStore) Option {
	return func(o *options) {
		o.store = value
	}
}

// Server mimics the data endpoints of the Codex storage API. Ingested
// content is held by the injected blob store, so two servers built with
// distinct stores share nothing, even within the same process.
type Server struct {
	opts options
	ln   net.Listener
	http *http.Server
}

func New(opts ...Option) *Server {
	s := &Server{}
	s.opts.address = "127.0.0.1:8080"
	for _, o := range opts {
		o(&s.opts)
	}
	if s.opts.store == nil {
		s.opts.store = storage.NewBlobStore(storage.NewInMemoryStore())
	}
	s.http = &http.Server{Handler: s}
	return s
}

func (s *Server) Listen() (addr string, err error) {
	s.ln, err = net.Listen("tcp", s.opts.address)
	if err != nil {
		return
	}
	addr = s.ln.Addr().String()
	return
}

// Serve accepts connections on the listener until Shutdown is called.
// Must be preceded by a successful Listen.
func (s *Server) Serve() error {
	err := s.http.Serve(s.ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for in-flight requests to complete.
// Serve returns some time after Shutdown is called.
func (s *Server) Shutdown() error {
	return s.http.Shutdown(context.Background())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := log.WithFields(log.Fields{
		"op":   r.Method,
		"path": r.URL.Path,
	})
	status, contentType, body := func() (int, string, []byte) {
		switch r.Method {
		case http.MethodPost:
			if r.URL.Path != ingestPath {
				logger.Debug("Not found")
				return http.StatusNotFound, "", nil
			}
			value, err := ioutil.ReadAll(r.Body)
			if err != nil {
				logger.WithField("err", err).Error("Could not read request body")
				return http.StatusInternalServerError, "", nil
			}
			cid, err := s.opts.store.Put(value)
			if err != nil {
				logger.WithField("err", err).Error("Could not store value")
				return http.StatusInternalServerError, "", nil
			}
			logger.WithField("cid", cid).Debug("Stored")
			body, err := json.Marshal(ingestResponse{CID: cid})
			if err != nil {
				logger.WithField("err", err).Error("Could not encode response")
				return http.StatusInternalServerError, "", nil
			}
			return http.StatusOK, "application/json", body
		case http.MethodGet:
			if !strings.HasPrefix(r.URL.Path, retrievePrefix) {
				logger.Debug("Health check fallback")
				return http.StatusOK, "application/json", []byte(`{"status":"ok"}`)
			}
			cid, ok := retrieveCID(r.URL.Path)
			if !ok {
				logger.Debug("Malformed retrieval path")
				return http.StatusNotFound, "", nil
			}
			value, err := s.opts.store.Get(cid)
			if errors.Is(err, storage.ErrNotFound) {
				logger.WithField("cid", cid).Debug("Not found")
				return http.StatusNotFound, "", nil
			}
			if err != nil {
				logger.WithFields(log.Fields{"cid": cid, "err": err}).Error()
				return http.StatusInternalServerError, "", nil
			}
			logger.WithField("cid", cid).Debug("Success")
			return http.StatusOK, "application/octet-stream", value
		default:
			logger.Debug("Method not handled")
			return http.StatusNotFound, "", nil
		}
	}()
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			logger.WithField("err", err).Error("Could not write response")
		}
	}
}

// retrieveCID extracts the content identifier from a retrieval path,
// which has the shape /api/codex/v1/data/<cid>/network/stream. Paths
// under the data prefix that don't fit the shape are rejected, rather
// than blowing up on a missing segment.
func retrieveCID(path string) (cid string, ok bool) {
	rest := strings.TrimPrefix(path, retrievePrefix)
	cid = strings.TrimSuffix(rest, retrieveSuffix)
	if cid == rest || cid == "" || strings.Contains(cid, "/") {
		return "", false
	}
	return cid, true
}
