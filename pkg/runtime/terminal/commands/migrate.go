package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewMigrateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Orders, OrderDetails and Products tables in the data source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, profile, err := env.session(cmd)
			if err != nil {
				return err
			}

			if err := env.Sources.Prepare(string(profile.Driver), profile.Path); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Info().Str("path", profile.Path).Msg("data source prepared")
			_, err = fmt.Fprintf(env.Output, "Prepared %s database at %s\n", profile.Driver, profile.Path)
			return err
		},
	}
}
