package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/metrics"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/services/catalog"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"
	"github.com/de-tools/revenue-atlas/pkg/store/datasource"
	"github.com/de-tools/revenue-atlas/pkg/store/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNorthwind(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "northwind.db")

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: path})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, sqlite.RunMigrations(db))
	for _, stmt := range []string{
		`INSERT INTO Products (ProductID, ProductName, Price) VALUES (1, 'Chais', 100)`,
		`INSERT INTO Orders (OrderID, OrderDate) VALUES (1, '2023-01-15'), (2, '2023-02-10')`,
		`INSERT INTO OrderDetails (OrderDetailID, OrderID, ProductID, Quantity) VALUES (1, 1, 1, 1), (2, 2, 1, 2)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, store, err := datasource.NewDefaultRegistry().Open("sqlite", seedNorthwind(t), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reg := prometheus.NewRegistry()
	recorder := metrics.New(reg)

	router := ConfigureRouter(Config{
		Addr:            ":8000",
		ShutdownTimeout: 10 * time.Second,
		AllowOrigins:    []string{"*"},
		Metrics:         MetricsConfig{Enabled: true, Path: "/metrics"},
		Dependencies: Dependencies{
			Forecaster: forecast.NewService(store, recorder),
			Explorer:   catalog.NewExplorer(store),
			Metrics:    recorder,
			Gatherer:   reg,
			Logger:     zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestWebAPI_Endpoints(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			expected:       api.HealthResponse{Status: "ok"},
			parseResponse:  unmarshalResponse[api.HealthResponse](),
		},
		{
			name:           "SalesHistory",
			method:         http.MethodGet,
			path:           "/sales_history",
			expectedStatus: http.StatusOK,
			expected: api.SalesHistoryResponse{Rows: []api.MonthlySales{
				{YearMonth: "2023-01", Sales: 100},
				{YearMonth: "2023-02", Sales: 200},
			}},
			parseResponse: unmarshalResponse[api.SalesHistoryResponse](),
		},
		{
			name:           "Forecast_ZeroPeriods",
			method:         http.MethodPost,
			path:           "/forecast",
			body:           `{"periods":0}`,
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{Detail: "periods: must be at least 1"},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
		{
			name:           "Forecast_EmptyRange",
			method:         http.MethodPost,
			path:           "/forecast",
			body:           `{"date_from":"2024-01"}`,
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{Detail: "No sales history available. Load Northwind first."},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
		{
			name:           "ExecuteSQL",
			method:         http.MethodPost,
			path:           "/execute_sql",
			body:           `{"sql":"SELECT COUNT(*) AS n FROM Orders;"}`,
			expectedStatus: http.StatusOK,
			expected:       api.SQLResponse{Rows: []map[string]any{{"n": float64(2)}}},
			parseResponse:  unmarshalResponse[api.SQLResponse](),
		},
		{
			name:           "ExecuteSQL_Forbidden",
			method:         http.MethodPost,
			path:           "/execute_sql",
			body:           `{"sql":"DELETE FROM Orders"}`,
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{Detail: "Only SELECT queries are allowed."},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
		{
			name:           "ExecuteSQL_NotSelect",
			method:         http.MethodPost,
			path:           "/execute_sql",
			body:           `{"sql":"VACUUM"}`,
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{Detail: "Query must start with SELECT."},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_Forecast(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/forecast", "application/json", strings.NewReader(`{"periods":2}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ForecastResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "LinearRegression", body.Model)
	assert.Equal(t, 2, body.Periods)
	require.Len(t, body.History, 2)
	require.Len(t, body.Forecast, 2)
	assert.Equal(t, "2023-03", body.Forecast[0].YearMonth)
	assert.InDelta(t, 300, body.Forecast[0].Sales, 1e-9)
	assert.Equal(t, "2023-04", body.Forecast[1].YearMonth)
	assert.InDelta(t, 400, body.Forecast[1].Sales, 1e-9)
	assert.Equal(t, "forecast", body.Forecast[1].Kind)
	assert.Equal(t, append(body.History, body.Forecast...), body.All)

	metricsResp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	exposition, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(exposition), `atlas_forecast_requests_total{outcome="ok"} 1`)
	assert.Contains(t, string(exposition), `atlas_history_months 2`)
	assert.Contains(t, string(exposition), `http_requests_total{method="POST",route="/forecast",status="200"} 1`)
}

func TestWebAPI_Schema(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.SchemaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	tables := map[string][]api.Column{}
	for _, tbl := range body.Tables {
		tables[tbl.Table] = tbl.Columns
	}
	require.Contains(t, tables, "Orders")
	assert.Contains(t, tables["Orders"], api.Column{Name: "OrderDate", Type: "DATETIME"})
	assert.Contains(t, tables, "Products")
	assert.Contains(t, tables, "OrderDetails")
}

func TestWebAPI_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/forecast", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
