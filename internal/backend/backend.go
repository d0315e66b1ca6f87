// Package backend executes SQL against a configured relational engine and
// materializes rows with canonical scalar values. It does no SQL rewriting.
package backend

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kyungjunleeme/Text2SQL/internal/result"
)

// Kind names a supported engine.
type Kind string

const (
	// KindSQLite is a lightweight engine operating on a local file or in
	// memory.
	KindSQLite Kind = "sqlite"
	// KindMySQL is a network engine reachable through a DSN.
	KindMySQL Kind = "mysql"
	// KindPostgres is a network engine reachable through a connection URL.
	KindPostgres Kind = "postgres"
)

// Backend runs a SQL string and materializes its rows.
type Backend interface {
	RunToRows(ctx context.Context, sql string) (*result.Set, error)
	Close() error
}

// TableRunner is implemented by backends whose engine produces a tabular
// result form natively.
type TableRunner interface {
	RunToTable(ctx context.Context, sql string) (*result.Set, error)
}

// Execer is implemented by backends that can run statements without
// materializing rows, e.g. for fixture seeding.
type Execer interface {
	Exec(ctx context.Context, sql string) error
}

// RunToTable returns the tabular form of a query result, deriving it from
// rows when the backend does not provide one natively.
func RunToTable(ctx context.Context, b Backend, sql string) (*result.Set, error) {
	if tr, ok := b.(TableRunner); ok {
		return tr.RunToTable(ctx, sql)
	}
	return b.RunToRows(ctx, sql)
}

// ExecutionError wraps the engine diagnostic for SQL the backend rejected
// or failed to run.
type ExecutionError struct {
	SQL string
	Err error
}

func (e *ExecutionError) Error() string { return "execute: " + e.Err.Error() }

func (e *ExecutionError) Unwrap() error { return e.Err }

// Config describes one engine connection.
type Config struct {
	Kind Kind   `yaml:"kind"`
	DSN  string `yaml:"dsn"`
	// Path is the database file for the sqlite kind; ":memory:" opens an
	// in-memory database.
	Path               string `yaml:"path"`
	StatementTimeoutMs int    `yaml:"statement_timeout_ms"`
}

// Open creates a backend for the configured engine kind. An unknown kind is
// fatal to the run.
func Open(cfg Config) (Backend, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(cfg.Kind)))) {
	case KindSQLite:
		return OpenSQLite(cfg)
	case KindMySQL:
		return OpenMySQL(cfg)
	case KindPostgres:
		return OpenPostgres(cfg)
	default:
		return nil, errors.Errorf("unknown backend kind %q", cfg.Kind)
	}
}
