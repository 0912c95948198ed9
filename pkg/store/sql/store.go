package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const salesQuery = `
	SELECT
		CAST(Orders.OrderDate AS TEXT) AS order_date,
		CAST(Products.Price AS DOUBLE) AS price,
		CAST(OrderDetails.Quantity AS DOUBLE) AS quantity
	FROM Orders
	JOIN OrderDetails ON Orders.OrderID = OrderDetails.OrderID
	JOIN Products ON OrderDetails.ProductID = Products.ProductID
`

// Dialect holds the catalog queries that differ between database engines.
type Dialect struct {
	Name string
	// TablesQuery returns one column with the user table names.
	TablesQuery string
	// ColumnsQuery takes the table name as its only argument and returns
	// the column name and declared type.
	ColumnsQuery string
}

// Store reads the Northwind sales tables and runs ad-hoc read-only queries.
type Store interface {
	ListSalesRecords(ctx context.Context) ([]store.SalesRecord, error)
	ListTables(ctx context.Context) ([]store.Table, error)
	Query(ctx context.Context, query string) ([]store.Row, error)
}

type sqlStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewStore(db *sql.DB, dialect Dialect) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if dialect.TablesQuery == "" || dialect.ColumnsQuery == "" {
		return nil, fmt.Errorf("dialect %q is incomplete", dialect.Name)
	}
	return &sqlStore{
		db:      db,
		dialect: dialect,
	}, nil
}

// withConn runs fn on the connection pinned to ctx, or on a dedicated connection
// that is released when fn returns.
func (s *sqlStore) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	if conn := GetConn(ctx); conn != nil {
		return fn(conn)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to release connection")
		}
	}()

	return fn(conn)
}

func (s *sqlStore) ListSalesRecords(ctx context.Context) ([]store.SalesRecord, error) {
	var records []store.SalesRecord
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, salesQuery)
		if err != nil {
			return fmt.Errorf("query sales records: %w", err)
		}
		defer closeRows(ctx, rows)

		records, err = scanSalesRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *sqlStore) ListTables(ctx context.Context) ([]store.Table, error) {
	var tables []store.Table
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		names, err := s.tableNames(ctx, conn)
		if err != nil {
			return err
		}

		tables = make([]store.Table, 0, len(names))
		for _, name := range names {
			columns, err := s.columns(ctx, conn, name)
			if err != nil {
				return err
			}
			tables = append(tables, store.Table{Name: name, Columns: columns})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *sqlStore) Query(ctx context.Context, query string) ([]store.Row, error) {
	var result []store.Row
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer closeRows(ctx, rows)

		result, err = scanGenericRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *sqlStore) tableNames(ctx context.Context, conn *sql.Conn) ([]string, error) {
	rows, err := conn.QueryContext(ctx, s.dialect.TablesQuery)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer closeRows(ctx, rows)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *sqlStore) columns(ctx context.Context, conn *sql.Conn, table string) ([]store.Column, error) {
	rows, err := conn.QueryContext(ctx, s.dialect.ColumnsQuery, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	defer closeRows(ctx, rows)

	columns := make([]store.Column, 0)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, store.Column{Name: name, Type: typ})
	}
	return columns, rows.Err()
}

func scanSalesRows(rows *sql.Rows) ([]store.SalesRecord, error) {
	records := make([]store.SalesRecord, 0)
	for rows.Next() {
		var (
			orderDate sql.NullString
			record    store.SalesRecord
		)
		if err := rows.Scan(&orderDate, &record.Price, &record.Quantity); err != nil {
			return nil, fmt.Errorf("scan sales record: %w", err)
		}
		// NULL dates surface later as a malformed month.
		record.OrderDate = orderDate.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales records: %w", err)
	}
	return records, nil
}

func scanGenericRows(rows *sql.Rows) ([]store.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]store.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(store.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close query rows")
	}
}
