// Command mockodex runs a minimal stand-in for the data endpoints of the
// Codex storage API, for demos and integration tests that need a storage
// node without running a real one.
//
// POST requests to /api/codex/v1/data store the request body and answer
// with a JSON object carrying the content identifier under "cid". GET
// requests to /api/codex/v1/data/<cid>/network/stream answer with the
// stored bytes, or 404 if the identifier is unknown. Any other GET
// answers 200 with {"status":"ok"}, which doubles as a health check; any
// other POST answers 404.
//
// The identifier is a fake: a truncated hex SHA-256 digest of the content
// behind a "bafy" literal, with none of the multiformats machinery of a
// real CID. All content lives in process memory and is gone when the
// process exits.
//
// By default the server binds 127.0.0.1:8080 and logs nothing per
// request. An rjson configuration file (default $HOME/lib/mockodex/config,
// override with -config) can change the listen address and enable debug
// logging.
package main // import "github.com/nicolagi/mockodex/cmd/mockodex"
