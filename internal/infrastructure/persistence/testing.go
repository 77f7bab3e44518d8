//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence/models"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/config"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB        *gorm.DB
	RideRepo  rides.RideRepository
	HorseRepo horses.HorseRepository
}

// SetupTestDB initializes an in-memory sqlite database with automatic cleanup
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  ":memory:",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	err = db.AutoMigrate(&models.HorseModel{}, &models.RideModel{})
	require.NoError(t, err, "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	rideRepo, err := NewGormRideRepository(db, log)
	require.NoError(t, err, "Failed to create ride repository")

	horseRepo, err := NewGormHorseRepository(db, log)
	require.NoError(t, err, "Failed to create horse repository")

	return &TestContext{
		DB:        db,
		RideRepo:  rideRepo,
		HorseRepo: horseRepo,
	}
}

// CreateTestHorse creates a horse entity with default values
func CreateTestHorse(t *testing.T, name string) *horses.Horse {
	t.Helper()

	if name == "" {
		name = "Test Horse"
	}

	return &horses.Horse{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now().UTC(),
		Name:            name,
	}
}

// CreateTestRide creates a ride entity with default values, optionally
// assigned to a horse
func CreateTestRide(t *testing.T, title string, horseID *string) *rides.Ride {
	t.Helper()

	if title == "" {
		title = "test ride"
	}

	return &rides.Ride{
		ID:                uuid.NewString(),
		DateTimeCreated:   time.Now().UTC(),
		Title:             title,
		RideDate:          time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		DistanceKm:        12.345,
		TotalTimeS:        3600,
		MovingTimeS:       3200,
		AvgSpeedKmh:       12.35,
		AvgMovingSpeedKmh: 13.89,
		MaxSpeedKmh:       34.2,
		AscentM:           210.5,
		DescentM:          198.2,
		TrackRef:          "/data/gpx/" + uuid.NewString() + ".gpx",
		HorseID:           horseID,
	}
}
