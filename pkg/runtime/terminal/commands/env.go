package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/de-tools/revenue-atlas/pkg/config"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/store/datasource"
	sqlstore "github.com/de-tools/revenue-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	FormatText  = "text"
	FormatTable = "table"
)

type ReportHandler interface {
	Handle(report *domain.Report) error
}

// Env carries the flags shared by every command and resolves them into a
// data source, a logger and a reporter.
type Env struct {
	Sources   datasource.Registry
	Reporters map[string]ReportHandler
	Output    io.Writer
	LogOutput io.Writer

	configPath string
	profile    string
	registry   string
	driver     string
	path       string
	format     string
}

func (e *Env) BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&e.configPath, "config", "c", "", "Path to a config.yaml file")
	flags.StringVar(&e.profile, "profile", "", "Data source profile name")
	flags.StringVar(&e.registry, "registry", "", "Path to a .atlascfg profile registry")
	flags.StringVar(&e.driver, "driver", "", "Database driver (sqlite or duckdb)")
	flags.StringVar(&e.path, "db", "", "Path to the database file")
	flags.StringVar(&e.format, "format", FormatText, "Report format (text or table)")
}

func (e *Env) load() (*config.Config, error) {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return nil, err
	}

	if e.profile != "" {
		cfg.DataSource.Profile = e.profile
	}
	if e.registry != "" {
		cfg.DataSource.Registry = e.registry
	}
	if e.driver != "" {
		cfg.DataSource.Driver = e.driver
	}
	if e.path != "" {
		cfg.DataSource.Path = e.path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session resolves the configuration and returns a context carrying the
// command logger together with the selected data source.
func (e *Env) session(cmd *cobra.Command) (context.Context, domain.DataSourceProfile, error) {
	cfg, err := e.load()
	if err != nil {
		return nil, domain.DataSourceProfile{}, err
	}

	profile, err := cfg.DataSource.ResolveDataSource()
	if err != nil {
		return nil, domain.DataSourceProfile{}, err
	}

	logger := cfg.Log.Logger(e.LogOutput).With().Str("datasource", profile.String()).Logger()
	return logger.WithContext(cmd.Context()), profile, nil
}

func (e *Env) open(cmd *cobra.Command) (context.Context, *sql.DB, sqlstore.Store, error) {
	ctx, profile, err := e.session(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	db, store, err := e.Sources.Open(string(profile.Driver), profile.Path, true)
	if err != nil {
		return nil, nil, nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", profile.Path).Msg("opened data source")
	return ctx, db, store, nil
}

func (e *Env) reporter() (ReportHandler, error) {
	r, ok := e.Reporters[e.format]
	if !ok {
		return nil, fmt.Errorf("unsupported report format %q", e.format)
	}
	return r, nil
}
