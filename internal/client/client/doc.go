// Package client bootstraps the local persistence of the questionnaire CLI:
// it opens the SQLite file that mirrors the session and applies the embedded
// goose migrations (see InitDatabase and RunMigrations).
package client
