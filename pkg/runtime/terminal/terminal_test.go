package terminal

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/de-tools/revenue-atlas/pkg/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, LogOutput: io.Discard})
	cli.rootCmd.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func seedSales(t *testing.T, path string) {
	t.Helper()
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: path})
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`INSERT INTO Products (ProductID, ProductName, Price) VALUES (1, 'Chais', 100)`,
		`INSERT INTO Orders (OrderID, OrderDate) VALUES (1, '2023-01-05'), (2, '2023-02-07'), (3, '2023-03-09')`,
		`INSERT INTO OrderDetails (OrderDetailID, OrderID, ProductID, Quantity) VALUES (1, 1, 1, 1), (2, 2, 1, 2), (3, 3, 1, 3)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestCLI_MigrateHistoryForecast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "northwind.db")

	out, err := runCLI(t, "migrate", "--db", path)
	require.NoError(t, err)
	assert.Equal(t, "Prepared sqlite database at "+path+"\n", out)

	seedSales(t, path)

	out, err = runCLI(t, "history", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Sales History (3 months)")
	assert.Contains(t, out, "- 2023-01: 100.00\n- 2023-02: 200.00\n- 2023-03: 300.00\n")

	out, err = runCLI(t, "forecast", "--db", path, "--periods", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "- 2023-04: 400.00 (forecast)")
	assert.Contains(t, out, "model: LinearRegression")

	out, err = runCLI(t, "forecast", "--db", path, "--format", "table", "--from", "2023-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Period: 2023-02 to 2023-08 (8 months)")
}

func TestCLI_MigrateHistoryDuckDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "northwind.duckdb")

	out, err := runCLI(t, "migrate", "--driver", "duckdb", "--db", path)
	require.NoError(t, err)
	assert.Equal(t, "Prepared duckdb database at "+path+"\n", out)

	_, err = runCLI(t, "forecast", "--driver", "duckdb", "--db", path)
	assert.EqualError(t, err, "forecast failed: No sales history available. Load Northwind first.")

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	require.NoError(t, err)
	for _, stmt := range []string{
		`INSERT INTO Products (ProductID, ProductName, Price) VALUES (1, 'Chais', 100)`,
		`INSERT INTO Orders (OrderID, OrderDate) VALUES (1, '2023-01-05'), (2, '2023-02-07')`,
		`INSERT INTO OrderDetails (OrderDetailID, OrderID, ProductID, Quantity) VALUES (1, 1, 1, 1), (2, 2, 1, 2)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	out, err = runCLI(t, "history", "--driver", "duckdb", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "- 2023-01: 100.00\n- 2023-02: 200.00\n")
}

func TestCLI_ForecastValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "northwind.db")
	_, err := runCLI(t, "migrate", "--db", path)
	require.NoError(t, err)

	_, err = runCLI(t, "forecast", "--db", path)
	assert.EqualError(t, err, "forecast failed: No sales history available. Load Northwind first.")

	_, err = runCLI(t, "forecast", "--db", path, "--from", "2023-1")
	assert.ErrorContains(t, err, "date_from")

	_, err = runCLI(t, "history", "--db", path, "--format", "xml")
	assert.EqualError(t, err, `unsupported report format "xml"`)
}

func TestCLI_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "northwind.db")
	_, err := runCLI(t, "migrate", "--db", path)
	require.NoError(t, err)

	out, err := runCLI(t, "schema", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "=== Orders ===")
	assert.Contains(t, out, "- OrderDate: DATETIME")
}

func TestCLI_Profiles(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".atlascfg")
	content := "[default]\npath = northwind.db\n\n[warehouse]\ndriver = duckdb\npath = sales.duckdb\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	out, err := runCLI(t, "profiles", "--registry", cfgPath)
	require.NoError(t, err)
	assert.Equal(t,
		"Name: `default`, Driver: `sqlite`, Path: `northwind.db`\n"+
			"Name: `warehouse`, Driver: `duckdb`, Path: `sales.duckdb`\n",
		out)

	_, err = runCLI(t, "profiles")
	assert.EqualError(t, err, "no profile registry configured, pass --registry")
}
