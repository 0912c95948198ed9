package domain

import "time"

type PointKind string

const (
	PointKindHistory  PointKind = "history"
	PointKindForecast PointKind = "forecast"
)

const LinearRegressionModel = "LinearRegression"

// MonthlyObservation is the revenue total of one observed calendar month.
type MonthlyObservation struct {
	YearMonth string // 2006-01
	Sales     float64
}

// IndexedObservation is a MonthlyObservation positioned on the time axis.
// T counts observed months, not elapsed calendar months.
type IndexedObservation struct {
	YearMonth string
	Sales     float64
	Date      time.Time // first day of the month, UTC
	T         int
}

type TrendModel struct {
	Intercept float64
	Slope     float64
}

func (m TrendModel) Predict(t int) float64 {
	return m.Intercept + m.Slope*float64(t)
}

type Point struct {
	YearMonth string
	Sales     float64
	Kind      PointKind
}

type ForecastRequest struct {
	Periods  int
	DateFrom string // optional, 2006-01
	DateTo   string // optional, 2006-01
}

type ForecastResult struct {
	History  []Point
	Forecast []Point
	All      []Point
	Model    string
	Periods  int
}
