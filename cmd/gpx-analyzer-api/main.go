// cmd/gpx-analyzer-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/rolfovo/gpx-analyzer/internal/api/rest/v1"
	"github.com/rolfovo/gpx-analyzer/internal/app"
	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/analysis"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence/models"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/storage"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/telemetry"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/config"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
	metrics  *telemetry.Telemetry
	db       *gorm.DB
}

type appServices struct {
	rideUpload   rides.RideUploadService
	rideMetadata rides.RideMetadataService
	rideAnalysis rides.RideAnalysisService
	rideDownload rides.RideDownloadService
	horse        horses.HorseService
	report       rides.ReportService
	backup       rides.BackupService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.HorseModel{}, &models.RideModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	rideRepo, err := persistence.NewGormRideRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride repository: %w", err)
	}

	horseRepo, err := persistence.NewGormHorseRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create horse repository: %w", err)
	}

	// Initialize track store
	ctx := context.Background()
	trackStore, err := initializeTrackStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize track store: %w", err)
	}

	// Initialize GPX analysis pipeline
	parser, err := analysis.NewGpxParser(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create GPX parser: %w", err)
	}

	analyzer, err := analysis.NewMetricsAnalyzer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics analyzer: %w", err)
	}

	metrics := telemetry.NewTelemetry()

	// Initialize services
	services, err := initializeApplicationServices(
		trackStore, rideRepo, horseRepo,
		parser, analyzer, metrics, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services: services,
		metrics:  metrics,
		db:       db,
	}, nil
}

// initializeTrackStore picks the configured storage backend
func initializeTrackStore(ctx context.Context, cfg *config.RestConfig, log logger.Logger) (rides.TrackStore, error) {
	switch cfg.Storage.Provider {
	case config.R2StorageProvider:
		trackStore, err := storage.NewR2TrackStore(ctx, &cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create R2 track store: %w", err)
		}
		log.Info("Using R2 bucket ", cfg.Storage.R2Bucket, " for track storage")
		return trackStore, nil

	case config.LocalStorageProvider:
		trackStore, err := storage.NewLocalTrackStore(cfg.Storage.LocalDir, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create local track store: %w", err)
		}
		log.Info("Using local directory ", cfg.Storage.LocalDir, " for track storage")
		return trackStore, nil

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Count requests per route and status
	r.Use(deps.metrics.Middleware())

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.rideUpload,
		deps.services.rideMetadata,
		deps.services.rideAnalysis,
		deps.services.rideDownload,
		deps.services.horse,
		deps.services.report,
		deps.services.backup,
		deps.metrics,
		deps.db,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if err := persistence.CloseDB(deps.db); err != nil {
		log.Warn("Could not close database cleanly: ", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	trackStore rides.TrackStore,
	rideRepo rides.RideRepository,
	horseRepo horses.HorseRepository,
	parser tracks.TrackParser,
	analyzer tracks.TrackAnalyzer,
	metrics *telemetry.Telemetry,
	log logger.Logger,
) (*appServices, error) {
	rideUploadService, err := app.NewRideUploadService(
		trackStore, rideRepo, horseRepo,
		parser, analyzer, metrics, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride upload service: %w", err)
	}

	rideMetadataService, err := app.NewRideMetadataService(rideRepo, trackStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride metadata service: %w", err)
	}

	rideAnalysisService, err := app.NewRideAnalysisService(
		rideRepo, trackStore, storage.NewHTTPTrackFetcher(),
		parser, analyzer, metrics, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride analysis service: %w", err)
	}

	rideDownloadService, err := app.NewRideDownloadService(rideRepo, trackStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride download service: %w", err)
	}

	horseService, err := app.NewHorseService(horseRepo, rideRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create horse service: %w", err)
	}

	reportService, err := app.NewReportService(rideRepo, horseRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	backupService, err := app.NewBackupService(horseRepo, rideRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		rideUpload:   rideUploadService,
		rideMetadata: rideMetadataService,
		rideAnalysis: rideAnalysisService,
		rideDownload: rideDownloadService,
		horse:        horseService,
		report:       reportService,
		backup:       backupService,
	}, nil
}
