package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	sqlstore "github.com/de-tools/revenue-atlas/pkg/store/sql"
	"github.com/marcboeker/go-duckdb/v2"
)

const ProductsSchema = `
	CREATE TABLE IF NOT EXISTS Products (
		ProductID INTEGER PRIMARY KEY,
		ProductName VARCHAR,
		SupplierID INTEGER,
		CategoryID INTEGER,
		Unit VARCHAR,
		Price DOUBLE DEFAULT 0
	);
`
const OrdersSchema = `
	CREATE TABLE IF NOT EXISTS Orders (
		OrderID INTEGER PRIMARY KEY,
		CustomerID INTEGER,
		EmployeeID INTEGER,
		OrderDate DATE,
		ShipperID INTEGER
	);
`
const OrderDetailsSchema = `
	CREATE TABLE IF NOT EXISTS OrderDetails (
		OrderDetailID INTEGER PRIMARY KEY,
		OrderID INTEGER,
		ProductID INTEGER,
		Quantity INTEGER
	);
`

var bootQueries = []string{
	ProductsSchema,
	OrdersSchema,
	OrderDetailsSchema,
}

var Dialect = sqlstore.Dialect{
	Name: "duckdb",
	TablesQuery: `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'
		ORDER BY table_name`,
	ColumnsQuery: `
		SELECT column_name, data_type FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position`,
}

type Settings struct {
	DbPath   string
	ReadOnly bool
}

// NewDB opens a DuckDB database. Writable databases get the sales tables created
// on every new connection; read-only ones are opened with access_mode=read_only.
func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("duckdb database path is empty")
	}

	dsn := fmt.Sprintf("%s?threads=4", settings.DbPath)
	if settings.ReadOnly {
		dsn += "&access_mode=read_only"
	}

	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		if settings.ReadOnly {
			return nil
		}
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

// Bootstrap forces a connection so the boot queries run and the sales tables
// exist before the handle is closed.
func Bootstrap(db *sql.DB) error {
	if err := db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("bootstrap duckdb database: %w", err)
	}
	return nil
}
