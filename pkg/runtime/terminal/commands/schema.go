package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/services/catalog"
	"github.com/spf13/cobra"
)

func NewSchemaCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the tables and columns of the data source",
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

			tables, err := catalog.NewExplorer(store).ListTables(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}

			return reporter.Handle(adapters.MapSchemaToReport(tables))
		},
	}
}
