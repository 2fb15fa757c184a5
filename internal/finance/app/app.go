package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/amfajardoo/investment-manager/internal/finance/http"
	"github.com/amfajardoo/investment-manager/internal/finance/identity"
	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/internal/finance/session"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/internal/finance/store/drivers/sqlite"
	"github.com/amfajardoo/investment-manager/pkg/jwtx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the finance service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *jwtx.Signer

	// Services
	authService         *service.AuthService
	cdtService          *service.CDTService
	fpvService          *service.FPVService
	taxService          *service.TaxBenefitService
	dashboardService    *service.DashboardService
	simulationService   *service.SimulationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "finance-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewEphemeralSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the maturity sweep
	app.housekeepingService.Start()

	app.logger.Info("finance service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down finance service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the maturity sweep
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("finance service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.taxService = &service.TaxBenefitService{
		Config: service.TaxBenefitConfig{
			UVTValue:        app.cfg.UVTValue,
			MonthlyLimitUVT: app.cfg.MonthlyLimitUVT,
			IncomeFraction:  app.cfg.IncomeFraction,
			MarginalRate:    app.cfg.MarginalRate,
		},
	}

	app.cdtService = &service.CDTService{
		Store:           app.db,
		AlertWindowDays: app.cfg.AlertWindowDays,
	}
	app.fpvService = &service.FPVService{
		Store:       app.db,
		Tax:         app.taxService,
		LockupYears: app.cfg.LockupYears,
	}
	app.dashboardService = &service.DashboardService{
		CDT:           app.cdtService,
		FPV:           app.fpvService,
		InflationRate: app.cfg.InflationRate,
	}
	app.simulationService = &service.SimulationService{}

	app.authService = &service.AuthService{
		Provider: &identity.LocalProvider{Store: app.db},
		Store:    app.db,
		Session:  session.NewStore(),
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.cdtService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.signer.Verifier(app.cfg.Issuer),
		app.cfg.Issuer,
		BuildVersion,
		app.cfg.SessionTTL,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.CDTService = app.cdtService
	router.FPVService = app.fpvService
	router.TaxService = app.taxService
	router.DashboardService = app.dashboardService
	router.SimulationService = app.simulationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
