// Package cli provides the interactive questionnaire command-line client.
//
// NewApp wires configuration, the SQLite-backed session store, the HTTP
// client with its interceptors (request id, bearer token, 401 handling) and
// the route table. App.Run opens the start page and blocks in the REPL until
// the user exits. Pages are views from the views package, built lazily the
// first time their route is opened.
package cli
