package domain

import "fmt"

type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverDuckDB Driver = "duckdb"
)

// DataSourceProfile names a database holding the Orders, OrderDetails and
// Products tables.
type DataSourceProfile struct {
	Name   string
	Driver Driver
	Path   string
}

func (p DataSourceProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Driver, p.Name)
}
