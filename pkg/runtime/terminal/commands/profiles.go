package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/services/registry"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the data source profiles of a .atlascfg registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.load()
			if err != nil {
				return err
			}
			if cfg.DataSource.Registry == "" {
				return fmt.Errorf("no profile registry configured, pass --registry")
			}

			profiles, err := registry.NewProfileRegistry(cfg.DataSource.Registry)
			if err != nil {
				return fmt.Errorf("failed to load profile registry: %w", err)
			}

			names, err := profiles.GetProfiles()
			if err != nil {
				return err
			}
			for _, name := range names {
				profile, err := profiles.GetProfile(name)
				if err != nil {
					fmt.Fprintf(env.Output, "Name: `%s`, invalid: %v\n", name, err)
					continue
				}
				fmt.Fprintf(env.Output, "Name: `%s`, Driver: `%s`, Path: `%s`\n", name, profile.Driver, profile.Path)
			}
			return nil
		},
	}
}
