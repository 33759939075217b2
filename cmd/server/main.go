package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/collector"
	"github.com/wellgrid/hbp-api/internal/config"
	"github.com/wellgrid/hbp-api/internal/handlers"
	"github.com/wellgrid/hbp-api/internal/metrics"
	"github.com/wellgrid/hbp-api/internal/middleware"
	"github.com/wellgrid/hbp-api/internal/migration"
	"github.com/wellgrid/hbp-api/internal/records"
	"github.com/wellgrid/hbp-api/internal/repository"
	"github.com/wellgrid/hbp-api/internal/routes"
	"github.com/wellgrid/hbp-api/internal/summary"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config  *config.Config
	db      *sql.DB
	logger  zerolog.Logger
	metrics *metrics.Registry
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	goose.SetLogger(migration.NewGooseAdapter(logger))

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	app := &application{
		config:  cfg,
		db:      db,
		logger:  logger,
		metrics: metrics.NewRegistry(),
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{"*"}),
		h.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	wellRepo := repository.NewWellRepository(app.db)
	svc := records.NewService(
		wellRepo,
		app.buildCollectors(logger),
		app.config.MaxRecordAgeDays,
		time.Duration(app.config.MemoTTLMinutes)*time.Minute,
		logger,
	)

	opts := summary.Options{
		BetweenDates: app.config.Report.BetweenDates,
		ShowDays:     app.config.Report.ShowDays,
		ShowMonths:   app.config.Report.ShowMonths,
	}

	authHandler := handlers.NewAuthHandler(app.db, app.config, logger)
	wellHandler := handlers.NewWellHandler(svc, app.metrics, opts, logger)
	reportHandler := handlers.NewReportHandler(wellHandler, logger)
	metricsHandler := handlers.NewMetricsHandler(app.metrics, app.db, svc)

	return routes.NewRouter(authHandler, wellHandler, reportHandler, metricsHandler)
}

// buildCollectors registers a scraper per supported state. North
// Dakota is only registered when credentials are configured; its feed
// is behind a subscription.
func (app *application) buildCollectors(logger zerolog.Logger) map[string]collector.Collector {
	client := &http.Client{Timeout: time.Duration(app.config.Collector.FetchTimeoutSeconds) * time.Second}

	collectors := map[string]collector.Collector{
		"05": collector.NewScraperCollector(collector.ColoradoConfig, client, logger),
	}
	if app.config.Collector.NorthDakotaUsername != "" {
		ndConfig := collector.NorthDakotaConfig
		ndConfig.Auth = &collector.BasicAuth{
			Username: app.config.Collector.NorthDakotaUsername,
			Password: app.config.Collector.NorthDakotaPassword,
		}
		collectors["33"] = collector.NewScraperCollector(ndConfig, client, logger)
	}
	return collectors
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
