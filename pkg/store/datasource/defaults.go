package datasource

import (
	"database/sql"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/de-tools/revenue-atlas/pkg/store/sqlite"
)

// NewDefaultRegistry returns a registry with the SQLite and DuckDB drivers registered.
// DuckDB databases create their tables when the first connection is made.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(string(domain.DriverSQLite), Driver{
		Open: func(path string, readOnly bool) (*sql.DB, error) {
			return sqlite.NewDB(sqlite.Settings{DbPath: path, ReadOnly: readOnly})
		},
		Dialect: sqlite.Dialect,
		Migrate: sqlite.RunMigrations,
	})
	_ = r.Register(string(domain.DriverDuckDB), Driver{
		Open: func(path string, readOnly bool) (*sql.DB, error) {
			return duckdb.NewDB(duckdb.Settings{DbPath: path, ReadOnly: readOnly})
		},
		Dialect: duckdb.Dialect,
		Migrate: duckdb.Bootstrap,
	})
	return r
}
