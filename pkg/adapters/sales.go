package adapters

import (
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

func MapMonthlyObservationsDomainToApi(series []domain.MonthlyObservation) api.SalesHistoryResponse {
	rows := make([]api.MonthlySales, 0, len(series))
	for _, o := range series {
		rows = append(rows, api.MonthlySales{YearMonth: o.YearMonth, Sales: o.Sales})
	}
	return api.SalesHistoryResponse{Rows: rows}
}

// MapForecastRequestApiToDomain expects defaults to be applied already.
func MapForecastRequestApiToDomain(req api.ForecastRequest) domain.ForecastRequest {
	res := domain.ForecastRequest{}
	if req.Periods != nil {
		res.Periods = *req.Periods
	}
	if req.DateFrom != nil {
		res.DateFrom = *req.DateFrom
	}
	if req.DateTo != nil {
		res.DateTo = *req.DateTo
	}
	return res
}

func MapPointDomainToApi(p domain.Point) api.ForecastPoint {
	return api.ForecastPoint{
		YearMonth: p.YearMonth,
		Sales:     p.Sales,
		Kind:      string(p.Kind),
	}
}

func mapPoints(points []domain.Point) []api.ForecastPoint {
	res := make([]api.ForecastPoint, 0, len(points))
	for _, p := range points {
		res = append(res, MapPointDomainToApi(p))
	}
	return res
}

func MapForecastResultDomainToApi(r domain.ForecastResult) api.ForecastResponse {
	return api.ForecastResponse{
		History:  mapPoints(r.History),
		Forecast: mapPoints(r.Forecast),
		All:      mapPoints(r.All),
		Model:    r.Model,
		Periods:  r.Periods,
	}
}
