package forecast

import "github.com/de-tools/revenue-atlas/pkg/models/domain"

// Assemble tags the observed series as history and appends the forecast after it.
func Assemble(series []domain.IndexedObservation, forecast []domain.Point, periods int) domain.ForecastResult {
	history := make([]domain.Point, 0, len(series))
	for _, obs := range series {
		history = append(history, domain.Point{
			YearMonth: obs.YearMonth,
			Sales:     obs.Sales,
			Kind:      domain.PointKindHistory,
		})
	}

	all := make([]domain.Point, 0, len(history)+len(forecast))
	all = append(all, history...)
	all = append(all, forecast...)

	return domain.ForecastResult{
		History:  history,
		Forecast: forecast,
		All:      all,
		Model:    domain.LinearRegressionModel,
		Periods:  periods,
	}
}
