package forecast

import (
	"sort"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

const yearMonthLayout = "2006-01"

// ParseYearMonth parses a YYYY-MM string into the first day of that month (UTC).
func ParseYearMonth(s string) (time.Time, error) {
	if len(s) != yearMonthLen {
		return time.Time{}, &time.ParseError{Layout: yearMonthLayout, Value: s, Message: ": expected YYYY-MM"}
	}
	return time.Parse(yearMonthLayout, s)
}

// IndexSeries keeps the observations within the inclusive [dateFrom, dateTo] bounds,
// sorts them chronologically and assigns each a positional time index. Empty bounds
// are ignored. Bounds are compared as strings, matching the YearMonth sort order.
func IndexSeries(series []domain.MonthlyObservation, dateFrom, dateTo string) ([]domain.IndexedObservation, error) {
	if err := validateBound("date_from", dateFrom); err != nil {
		return nil, err
	}
	if err := validateBound("date_to", dateTo); err != nil {
		return nil, err
	}

	indexed := make([]domain.IndexedObservation, 0, len(series))
	for _, obs := range series {
		if dateFrom != "" && obs.YearMonth < dateFrom {
			continue
		}
		if dateTo != "" && obs.YearMonth > dateTo {
			continue
		}
		date, err := ParseYearMonth(obs.YearMonth)
		if err != nil {
			return nil, validationErrorf("year_month", obs.YearMonth, "Bad year_month value: %s", obs.YearMonth)
		}
		indexed = append(indexed, domain.IndexedObservation{
			YearMonth: obs.YearMonth,
			Sales:     obs.Sales,
			Date:      date,
		})
	}

	sort.SliceStable(indexed, func(i, j int) bool {
		return indexed[i].Date.Before(indexed[j].Date)
	})
	for i := range indexed {
		indexed[i].T = i
	}
	return indexed, nil
}

func validateBound(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := ParseYearMonth(value); err != nil {
		return validationErrorf(field, value, "must be a YYYY-MM month, got %q", value)
	}
	return nil
}
