package backend

import (
	_ "modernc.org/sqlite"
)

// OpenSQLite opens a local-file SQLite backend. cfg.Path ":memory:" opens
// an in-memory database; the single pooled connection keeps it alive for
// the life of the backend.
func OpenSQLite(cfg Config) (Backend, error) {
	path := cfg.Path
	if path == "" {
		path = cfg.DSN
	}
	if path == "" {
		path = ":memory:"
	}
	return newSQLBackend(KindSQLite, "sqlite", path, cfg)
}
