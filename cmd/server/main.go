// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "sik-configurator/docs"
	"sik-configurator/internal/config"
	"sik-configurator/internal/database"
	"sik-configurator/internal/discovery"
	"sik-configurator/internal/handler"
	"sik-configurator/internal/protocol"
	"sik-configurator/internal/radio"
	"sik-configurator/internal/repository"
	"sik-configurator/internal/routes"
	"sik-configurator/internal/service"
	"sik-configurator/internal/simulator"
	"sik-configurator/internal/utils"
)

// Application represents the main application
type Application struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	database *database.DB

	// Radio session
	radioService *radio.Service
	scanner      *discovery.Scanner

	// Events
	eventBus  *handler.EventBus
	wsHandler *handler.WebSocketHandler

	// Profiles
	profileRepo    repository.ProfileRepository
	profileService *service.ProfileService

	cancel context.CancelFunc
}

// @title SiK Configurator API
// @version 1.0.0
// @description Configure SiK telemetry radios over their serial AT command interface

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "", "directory containing config.yaml")
	migrateAction := flag.String("migrate", "", "run profile schema migrations (up, down, version) and exit")
	flag.Parse()

	if *migrateAction != "" {
		if err := runMigration(*configPath, *migrateAction); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize application
	app, err := NewApplication(*configPath)
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Start the application
	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication(configPath string) (*Application, error) {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, "sik-configurator")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	// Initialize components
	if err := app.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initializeRadio(); err != nil {
		return nil, fmt.Errorf("failed to initialize radio: %w", err)
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initializeServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return app, nil
}

// initializeDatabase sets up profile storage. Without a database profiles
// live in memory for the lifetime of the process.
func (app *Application) initializeDatabase() error {
	if !app.config.Database.Enabled {
		app.profileRepo = repository.NewMemoryProfileRepository()
		app.logger.Info("Database disabled, profiles are kept in memory")
		return nil
	}

	migrator := database.NewMigrator(app.config.GetDatabaseDSN(), app.logger)
	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db, err := database.NewConnection(app.config, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	app.database = db
	app.profileRepo = repository.NewProfileRepository(db, app.logger)

	app.logger.Info("Database initialized successfully")
	return nil
}

// runMigration runs a single migration action against the configured
// database
func runMigration(configPath, action string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer utils.CloseLogger(logger)

	migrator := database.NewMigrator(cfg.GetDatabaseDSN(), logger)
	switch action {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "version":
		version, dirty, ok, err := migrator.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}
}

// initializeRadio sets up the serial dialer and the radio session
func (app *Application) initializeRadio() error {
	var sim *simulator.Dialer
	if app.config.Radio.Simulate {
		sim = simulator.NewDialer(simulator.Options{})
		app.logger.Warn("Radio simulator enabled", zap.String("port", simulator.DefaultPortName))
	}

	app.eventBus = handler.NewEventBus(app.config.Events.BufferSize, app.logger)

	factory := protocol.NewFactory(app.config.SerialConfig(), sim, app.logger)
	app.radioService = radio.NewService(factory, radio.Options{
		Timing:          app.config.RadioTiming(),
		DefaultBaudRate: app.config.Radio.DefaultBaudRate,
		ExitCommand:     app.config.Radio.ExitCommand,
		Events:          app.eventBus,
		Logger:          app.logger,
	})
	app.scanner = discovery.NewScanner(app.logger, app.config.Radio.Simulate)

	app.logger.Info("Radio service initialized",
		zap.Int("default_baud_rate", app.config.Radio.DefaultBaudRate),
		zap.Bool("simulate", app.config.Radio.Simulate),
	)
	return nil
}

// initializeServices creates service instances
func (app *Application) initializeServices() error {
	app.profileService = service.NewProfileService(app.profileRepo, app.radioService, app.logger)

	app.logger.Info("Services initialized successfully")
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() error {
	app.wsHandler = handler.NewWebSocketHandler(
		app.eventBus,
		app.radioService,
		app.config.Security.AllowedOrigins,
		app.logger,
	)

	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.database,
		app.radioService,
		app.scanner,
		app.profileService,
		app.eventBus,
		app.wsHandler,
	)

	router := routerManager.SetupRouter()

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)

	return nil
}

// startBackgroundServices starts event distribution
func (app *Application) startBackgroundServices(ctx context.Context) {
	go app.eventBus.Start(ctx)
	go app.wsHandler.Run(ctx)

	app.logger.Info("Background services started")
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "sik-configurator")
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	// Leave the radio in data mode
	app.radioService.Disconnect()

	if app.cancel != nil {
		app.cancel()
	}

	if app.database != nil {
		if err := app.database.Close(); err != nil {
			app.logger.Error("Database close error", zap.Error(err))
		} else {
			app.logger.Info("Database connection closed")
		}
	}

	app.logger.Info("Application shutdown completed")

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

// Start runs the HTTP server until a shutdown signal arrives
func (app *Application) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	app.startBackgroundServices(ctx)

	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	app.waitForShutdown()

	return nil
}
