package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"
	"github.com/spf13/cobra"
)

func NewHistoryCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print monthly sales totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reporter, err := env.reporter()
			if err != nil {
				return err
			}

			ctx, db, store, err := env.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			series, err := forecast.NewService(store, nil).GetHistory(ctx)
			if err != nil {
				return fmt.Errorf("failed to load sales history: %w", err)
			}

			return reporter.Handle(adapters.MapHistoryToReport(series))
		},
	}
}
