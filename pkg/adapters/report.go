package adapters

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

func MapHistoryToReport(series []domain.MonthlyObservation) *domain.Report {
	report := &domain.Report{Title: "Monthly Sales History"}
	section := domain.ReportSection{
		Title:   "History",
		Details: make([]domain.ReportDetail, 0, len(series)),
	}

	for _, o := range series {
		report.Total += o.Sales
		section.Details = append(section.Details, domain.ReportDetail{
			Name:  o.YearMonth,
			Value: formatSales(o.Sales),
		})
	}

	if len(series) > 0 {
		report.Period = domain.TimePeriod{
			Start:  series[0].YearMonth,
			End:    series[len(series)-1].YearMonth,
			Months: len(series),
		}
	}
	report.Sections = []domain.ReportSection{section}
	return report
}

func MapForecastToReport(result domain.ForecastResult) *domain.Report {
	report := &domain.Report{Title: "Sales Forecast"}

	history := domain.ReportSection{Title: "History"}
	for _, p := range result.History {
		report.Total += p.Sales
		history.Details = append(history.Details, pointDetail(p))
	}

	forecast := domain.ReportSection{
		Title: "Forecast",
		Summary: map[string]interface{}{
			"model":   result.Model,
			"periods": result.Periods,
		},
	}
	for _, p := range result.Forecast {
		forecast.Details = append(forecast.Details, pointDetail(p))
	}

	if len(result.All) > 0 {
		report.Period = domain.TimePeriod{
			Start:  result.All[0].YearMonth,
			End:    result.All[len(result.All)-1].YearMonth,
			Months: len(result.All),
		}
	}
	report.Sections = []domain.ReportSection{history, forecast}
	return report
}

func MapSchemaToReport(tables []domain.Table) *domain.Report {
	report := &domain.Report{Title: "Database Schema"}
	for _, t := range tables {
		section := domain.ReportSection{
			Title:   t.Name,
			Summary: map[string]interface{}{"columns": len(t.Columns)},
		}
		for _, c := range t.Columns {
			section.Details = append(section.Details, domain.ReportDetail{Name: c.Name, Value: c.Type})
		}
		report.Sections = append(report.Sections, section)
	}
	return report
}

func pointDetail(p domain.Point) domain.ReportDetail {
	return domain.ReportDetail{
		Name:        p.YearMonth,
		Value:       formatSales(p.Sales),
		Description: string(p.Kind),
	}
}

func formatSales(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
