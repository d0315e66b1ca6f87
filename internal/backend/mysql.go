package backend

import (
	"github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// OpenMySQL opens a MySQL-protocol backend (MySQL, TiDB or a compatible
// warehouse) from a go-sql-driver DSN.
func OpenMySQL(cfg Config) (Backend, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mysql backend requires a dsn")
	}
	return newSQLBackend(KindMySQL, "mysql", cfg.DSN, cfg)
}
