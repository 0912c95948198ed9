package forecast

import (
	"database/sql"
	"sort"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
)

const yearMonthLen = len("2006-01")

// AggregateMonthly groups line items by the month prefix of their order date and
// sums price x quantity per month. Line items with a NULL or non-finite price or
// quantity contribute zero. The result is sorted by YearMonth and contains only months that
// appear in the input.
func AggregateMonthly(records []store.SalesRecord) []domain.MonthlyObservation {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		month := monthPrefix(r.OrderDate)
		total := totals[month]
		if finite(r.Price) && finite(r.Quantity) {
			total = total.Add(decimal.NewFromFloat(r.Price.Float64).Mul(decimal.NewFromFloat(r.Quantity.Float64)))
		}
		totals[month] = total
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]domain.MonthlyObservation, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthlyObservation{
			YearMonth: m,
			Sales:     totals[m].InexactFloat64(),
		})
	}
	return out
}

func finite(v sql.NullFloat64) bool {
	return v.Valid && isFinite(v.Float64)
}

func monthPrefix(orderDate string) string {
	if len(orderDate) < yearMonthLen {
		return orderDate
	}
	return orderDate[:yearMonthLen]
}
