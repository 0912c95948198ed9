package terminal

import (
	"io"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/revenue-atlas/pkg/store/datasource"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Sources   datasource.Registry
	Output    io.Writer
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Sources == nil {
		opts.Sources = datasource.NewDefaultRegistry()
	}

	cli := &CLI{
		env: &commands.Env{
			Sources: opts.Sources,
			Reporters: map[string]commands.ReportHandler{
				commands.FormatText:  NewReporter(opts.Output),
				commands.FormatTable: export.NewReporter(opts.Output),
			},
			Output:    opts.Output,
			LogOutput: opts.LogOutput,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Monthly sales history and trend forecast tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.env.BindFlags(cmd)

	cmd.AddCommand(commands.NewHistoryCmd(cli.env))
	cmd.AddCommand(commands.NewForecastCmd(cli.env))
	cmd.AddCommand(commands.NewSchemaCmd(cli.env))
	cmd.AddCommand(commands.NewMigrateCmd(cli.env))
	cmd.AddCommand(commands.NewProfilesCmd(cli.env))

	return cmd
}
