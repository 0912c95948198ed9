package api

type MonthlySales struct {
	YearMonth string  `json:"year_month"`
	Sales     float64 `json:"sales"`
}

type SalesHistoryResponse struct {
	Rows []MonthlySales `json:"rows"`
}

// ForecastRequest is the body of POST /forecast. Periods is a pointer so that an
// explicit 0 is distinguishable from an omitted value.
type ForecastRequest struct {
	Periods  *int    `json:"periods" default:"6" validate:"required,gte=1"`
	DateFrom *string `json:"date_from" validate:"omitempty,datetime=2006-01"`
	DateTo   *string `json:"date_to" validate:"omitempty,datetime=2006-01"`
}

type ForecastPoint struct {
	YearMonth string  `json:"year_month"`
	Sales     float64 `json:"sales"`
	Kind      string  `json:"kind"`
}

type ForecastResponse struct {
	History  []ForecastPoint `json:"history"`
	Forecast []ForecastPoint `json:"forecast"`
	All      []ForecastPoint `json:"all"`
	Model    string          `json:"model"`
	Periods  int             `json:"periods"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
