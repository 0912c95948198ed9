package forecast

import (
	"math"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// FitTrend fits sales = intercept + slope*t by ordinary least squares.
func FitTrend(series []domain.IndexedObservation) (domain.TrendModel, error) {
	if len(series) == 0 {
		return domain.TrendModel{}, errNoHistory
	}
	if len(series) == 1 {
		return checkModel(domain.TrendModel{Intercept: series[0].Sales})
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, obs := range series {
		xs[i] = float64(obs.T)
		ys[i] = obs.Sales
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return checkModel(domain.TrendModel{Intercept: alpha, Slope: beta})
}

func checkModel(m domain.TrendModel) (domain.TrendModel, error) {
	if !isFinite(m.Intercept) || !isFinite(m.Slope) {
		return domain.TrendModel{}, &InternalError{Op: "fit trend", Err: errNonFinite}
	}
	return m, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Extrapolate projects the model over the periods months following the last
// observation of series. series must be non-empty.
func Extrapolate(model domain.TrendModel, series []domain.IndexedObservation, periods int) []domain.Point {
	last := series[len(series)-1]
	points := make([]domain.Point, 0, periods)
	for i := 1; i <= periods; i++ {
		points = append(points, domain.Point{
			YearMonth: AddMonths(last.Date, i).Format(yearMonthLayout),
			Sales:     model.Predict(last.T + i),
			Kind:      domain.PointKindForecast,
		})
	}
	return points
}

// AddMonths advances the first-of-month date d by n whole months, carrying into
// the year explicitly. The day is always 1.
func AddMonths(d time.Time, n int) time.Time {
	offset := int(d.Month()) - 1 + n
	year := d.Year() + offset/12
	month := offset%12 + 1
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
