package store

import "database/sql"

// SalesRecord is one order line item as read from the Orders, OrderDetails and
// Products tables.
type SalesRecord struct {
	OrderDate string
	Price     sql.NullFloat64
	Quantity  sql.NullFloat64
}

type Column struct {
	Name string
	Type string
}

type Table struct {
	Name    string
	Columns []Column
}

// Row is a single result row of an ad-hoc query, keyed by column name.
type Row map[string]any
