package backend

import (
	"github.com/pkg/errors"

	_ "github.com/lib/pq"
)

// OpenPostgres opens a PostgreSQL backend from a lib/pq connection string
// or URL.
func OpenPostgres(cfg Config) (Backend, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres backend requires a dsn")
	}
	return newSQLBackend(KindPostgres, "postgres", cfg.DSN, cfg)
}
