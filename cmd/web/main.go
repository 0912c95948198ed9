package main

import (
	"fmt"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/config"
	"github.com/de-tools/revenue-atlas/pkg/metrics"
	"github.com/de-tools/revenue-atlas/pkg/server"
	"github.com/de-tools/revenue-atlas/pkg/services/catalog"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"
	"github.com/de-tools/revenue-atlas/pkg/store/datasource"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Revenue Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config.yaml file (environment variables prefixed with ATLAS_ override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.Log.Logger(os.Stdout)

	profile, err := cfg.DataSource.ResolveDataSource()
	if err != nil {
		return fmt.Errorf("failed to resolve data source: %w", err)
	}

	db, store, err := datasource.NewDefaultRegistry().Open(string(profile.Driver), profile.Path, true)
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer db.Close()

	logger.Info().Msgf("Data source `%s` opened read-only from `%s`.", profile, profile.Path)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowOrigins:    cfg.CORS.AllowOrigins,
		Metrics: server.MetricsConfig{
			Enabled: cfg.Metrics.Enabled,
			Path:    cfg.Metrics.Path,
		},
		Dependencies: server.Dependencies{
			Forecaster: forecast.NewService(store, recorder),
			Explorer:   catalog.NewExplorer(store),
			Metrics:    recorder,
			Gatherer:   reg,
		},
	})

	return api.Start()
}
