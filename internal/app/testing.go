//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/analysis"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/storage"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/telemetry"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	RideUploadService   rides.RideUploadService
	RideMetadataService rides.RideMetadataService
	RideDownloadService rides.RideDownloadService
	RideAnalysisService rides.RideAnalysisService
	HorseService        horses.HorseService
	ReportService       rides.ReportService
	BackupService       rides.BackupService

	TrackStore rides.TrackStore
	DBContext  *persistence.TestContext
}

// SetupTestServices initializes all application services for integration
// tests, backed by an in-memory sqlite database and a temporary track
// directory
func SetupTestServices(t *testing.T) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t)

	trackStore, err := storage.NewLocalTrackStore(t.TempDir(), log)
	require.NoError(t, err, "Failed to create track store")

	parser, err := analysis.NewGpxParser(log)
	require.NoError(t, err, "Failed to create GPX parser")

	analyzer, err := analysis.NewMetricsAnalyzer(log)
	require.NoError(t, err, "Failed to create metrics analyzer")

	metrics := telemetry.NewTelemetry()
	fetcher := storage.NewHTTPTrackFetcher()

	rideUploadService, err := NewRideUploadService(
		trackStore,
		dbContext.RideRepo,
		dbContext.HorseRepo,
		parser,
		analyzer,
		metrics,
		log,
	)
	require.NoError(t, err, "Failed to create RideUploadService")

	rideMetadataService, err := NewRideMetadataService(dbContext.RideRepo, trackStore, log)
	require.NoError(t, err, "Failed to create RideMetadataService")

	rideDownloadService, err := NewRideDownloadService(dbContext.RideRepo, trackStore, log)
	require.NoError(t, err, "Failed to create RideDownloadService")

	rideAnalysisService, err := NewRideAnalysisService(
		dbContext.RideRepo,
		trackStore,
		fetcher,
		parser,
		analyzer,
		metrics,
		log,
	)
	require.NoError(t, err, "Failed to create RideAnalysisService")

	horseService, err := NewHorseService(dbContext.HorseRepo, dbContext.RideRepo, log)
	require.NoError(t, err, "Failed to create HorseService")

	reportService, err := NewReportService(dbContext.RideRepo, dbContext.HorseRepo, log)
	require.NoError(t, err, "Failed to create ReportService")

	backupService, err := NewBackupService(dbContext.HorseRepo, dbContext.RideRepo, log)
	require.NoError(t, err, "Failed to create BackupService")

	return &TestServices{
		RideUploadService:   rideUploadService,
		RideMetadataService: rideMetadataService,
		RideDownloadService: rideDownloadService,
		RideAnalysisService: rideAnalysisService,
		HorseService:        horseService,
		ReportService:       reportService,
		BackupService:       backupService,
		TrackStore:          trackStore,
		DBContext:           dbContext,
	}
}
