package sqlite

import (
	"database/sql"
	"fmt"

	sqlstore "github.com/de-tools/revenue-atlas/pkg/store/sql"

	_ "modernc.org/sqlite"
)

var Dialect = sqlstore.Dialect{
	Name: "sqlite",
	TablesQuery: `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	ColumnsQuery: `SELECT name, type FROM pragma_table_info(?)`,
}

type Settings struct {
	DbPath   string
	ReadOnly bool
}

// NewDB opens the SQLite database at settings.DbPath. Read-only databases are
// opened with mode=ro and query_only so that ad-hoc queries cannot modify them.
func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	db, err := sql.Open("sqlite", dsn(settings))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	return db, nil
}

func dsn(settings Settings) string {
	if !settings.ReadOnly {
		return settings.DbPath
	}
	return "file:" + settings.DbPath + "?mode=ro&_pragma=query_only(1)"
}
