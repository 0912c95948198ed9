package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/revenue-atlas/pkg/handlers/sales"
	"github.com/de-tools/revenue-atlas/pkg/metrics"
	"github.com/de-tools/revenue-atlas/pkg/services/catalog"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"

	atlasmiddleware "github.com/de-tools/revenue-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const slowRequestThreshold = 2 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Forecaster forecast.Service
	Explorer   catalog.Explorer
	// Metrics and Gatherer may be nil when metrics are disabled.
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	AllowOrigins    []string
	Metrics         MetricsConfig
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	salesHandler := handlers.NewHandler(deps.Forecaster, deps.Explorer)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(atlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)
	router.Use(atlasmiddleware.CORS(atlasmiddleware.CORSConfig{
		AllowOrigins:     config.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}))

	metricsEnabled := config.Metrics.Enabled && deps.Metrics != nil && deps.Gatherer != nil
	if metricsEnabled {
		router.Use(atlasmiddleware.Metrics(deps.Metrics, slowRequestThreshold))
	}

	router.Get("/health", salesHandler.Health)
	router.Get("/schema", salesHandler.Schema)
	router.Post("/execute_sql", salesHandler.ExecuteSQL)
	router.Get("/sales_history", salesHandler.SalesHistory)
	router.Post("/forecast", salesHandler.Forecast)

	if metricsEnabled {
		router.Method(http.MethodGet, config.Metrics.Path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
