package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"
	"github.com/spf13/cobra"
)

type ForecastCmd struct {
	env      *Env
	periods  int
	dateFrom string
	dateTo   string
}

func NewForecastCmd(env *Env) *cobra.Command {
	fc := &ForecastCmd{env: env}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Fit a linear trend to monthly sales and extrapolate it",
		Args:  cobra.NoArgs,
		RunE:  fc.run,
	}

	cmd.Flags().IntVar(&fc.periods, "periods", forecast.DefaultPeriods, "Number of months to forecast")
	cmd.Flags().StringVar(&fc.dateFrom, "from", "", "First month of history to fit (YYYY-MM)")
	cmd.Flags().StringVar(&fc.dateTo, "to", "", "Last month of history to fit (YYYY-MM)")

	return cmd
}

func (fc *ForecastCmd) run(cmd *cobra.Command, _ []string) error {
	reporter, err := fc.env.reporter()
	if err != nil {
		return err
	}

	ctx, db, store, err := fc.env.open(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := forecast.NewService(store, nil).Forecast(ctx, domain.ForecastRequest{
		Periods:  fc.periods,
		DateFrom: fc.dateFrom,
		DateTo:   fc.dateTo,
	})
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	return reporter.Handle(adapters.MapForecastToReport(result))
}
