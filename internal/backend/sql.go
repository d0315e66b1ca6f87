package backend

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

// sqlBackend adapts a database/sql driver to the Backend contract. One
// connection is kept per backend; shared session state makes concurrent use
// of a single handle unsafe, so callers wanting parallelism open one
// backend per worker.
type sqlBackend struct {
	db      *sql.DB
	kind    Kind
	timeout time.Duration
}

func newSQLBackend(kind Kind, driver, dsn string, cfg Config) (*sqlBackend, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s backend", kind)
	}
	db.SetMaxOpenConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		util.CloseWithErr(db, string(kind))
		return nil, errors.Wrapf(err, "ping %s backend", kind)
	}
	return &sqlBackend{
		db:      db,
		kind:    kind,
		timeout: time.Duration(cfg.StatementTimeoutMs) * time.Millisecond,
	}, nil
}

func (b *sqlBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// RunToRows executes the statement and materializes every row with
// canonical scalar cells.
func (b *sqlBackend) RunToRows(ctx context.Context, query string) (*result.Set, error) {
	qctx, cancel := b.withTimeout(ctx)
	defer cancel()

	rows, err := b.db.QueryContext(qctx, query)
	if err != nil {
		return nil, &ExecutionError{SQL: query, Err: err}
	}
	defer util.CloseWithErr(rows, "backend rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, &ExecutionError{SQL: query, Err: err}
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, &ExecutionError{SQL: query, Err: err}
	}
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = strings.ToUpper(t.DatabaseTypeName())
	}

	out := &result.Set{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &ExecutionError{SQL: query, Err: err}
		}
		row := make(result.Row, len(cols))
		for i, v := range values {
			row[i] = canonicalScalar(v, typeNames[i])
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{SQL: query, Err: err}
	}
	return out, nil
}

// Exec runs a statement that produces no rows.
func (b *sqlBackend) Exec(ctx context.Context, query string) error {
	qctx, cancel := b.withTimeout(ctx)
	defer cancel()
	if _, err := b.db.ExecContext(qctx, query); err != nil {
		return &ExecutionError{SQL: query, Err: err}
	}
	return nil
}

func (b *sqlBackend) Close() error {
	return b.db.Close()
}

// canonicalScalar maps a driver value onto the canonical scalar domain:
// nil, bool, int64, float64 or string. Decimal and date wrapper types that
// drivers hand back as text are resolved through the column type so that
// downstream comparison sees well-ordered, hashable values.
func canonicalScalar(v any, dbType string) any {
	switch c := v.(type) {
	case nil:
		return nil
	case bool:
		return c
	case int64:
		return c
	case int:
		return int64(c)
	case int32:
		return int64(c)
	case uint64:
		if c <= math.MaxInt64 {
			return int64(c)
		}
		return strconv.FormatUint(c, 10)
	case float64:
		return c
	case float32:
		return float64(c)
	case time.Time:
		return c.UTC().Format("2006-01-02 15:04:05")
	case []byte:
		return textScalar(string(c), dbType)
	case string:
		return textScalar(c, dbType)
	default:
		return fmt.Sprint(c)
	}
}

// textScalar resolves text payloads whose column type says they are
// numeric, e.g. MySQL DECIMAL columns scanned as []byte.
func textScalar(s, dbType string) any {
	switch {
	case isDecimalType(dbType):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case isIntegerType(dbType):
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return s
}

func isDecimalType(dbType string) bool {
	switch dbType {
	case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "NEWDECIMAL":
		return true
	default:
		return false
	}
}

func isIntegerType(dbType string) bool {
	switch dbType {
	case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT", "INT2", "INT4", "INT8":
		return true
	default:
		return false
	}
}

