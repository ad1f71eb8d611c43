package db

import (
	"database/sql"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"os"
	"path/filepath"
	"strings"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	return Open(config.DbConnectionString.Value)
}

// Open connects to postgres for postgres:// DSNs and to a sqlite file otherwise.
// The directory of a sqlite file is created on first use.
func Open(dsn string) (*bun.DB, error) {
	var db *bun.DB

	if isPostgres(dsn) {
		sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqlDb, pgdialect.New())
	} else {
		path, query := splitSqliteDsn(dsn)
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("error creating store directory: %w", err)
			}
		}

		sqlDb, err := sql.Open("sqlite3", sqliteDsn(path, query))
		if err != nil {
			return nil, err
		}
		// a single connection serialises writers the way the store expects
		sqlDb.SetMaxOpenConns(1)

		db = bun.NewDB(sqlDb, sqlitedialect.New())
	}

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func splitSqliteDsn(dsn string) (path string, query string) {
	path = strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}

	return path, query
}

func sqliteDsn(path, query string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"
	if query != "" {
		params = query + "&" + params
	}

	return "file:" + path + "?" + params
}
