//go:build integration
// +build integration

package app

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRideOn(t *testing.T, services *TestServices, date time.Time, distanceKm, avgKmh, maxKmh, ascentM float64, horseID *string) *rides.Ride {
	t.Helper()

	ride := persistence.CreateTestRide(t, "", horseID)
	ride.RideDate = date
	ride.DistanceKm = distanceKm
	ride.AvgSpeedKmh = avgKmh
	ride.MaxSpeedKmh = maxKmh
	ride.AscentM = ascentM
	require.NoError(t, services.DBContext.RideRepo.Create(context.Background(), ride))
	return ride
}

func TestReportService_Summary_BucketsByPeriod(t *testing.T) {
	services := SetupTestServices(t)

	may := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	createRideOn(t, services, may, 10, 10, 20, 100, nil)
	createRideOn(t, services, may.AddDate(0, 0, -1), 20, 14, 25, 150, nil)
	createRideOn(t, services, time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), 5, 8, 15, 50, nil)

	summary, err := services.ReportService.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Monthly, 2)
	assert.Equal(t, "2024-05", summary.Monthly[0].Period)
	assert.Equal(t, 2, summary.Monthly[0].Rides)
	assert.Equal(t, 30.0, summary.Monthly[0].Km)
	assert.Equal(t, 12.0, summary.Monthly[0].AvgKmh)
	assert.Equal(t, "2023-12", summary.Monthly[1].Period)

	require.Len(t, summary.Yearly, 2)
	assert.Equal(t, "2024", summary.Yearly[0].Period)
	assert.Equal(t, "2023", summary.Yearly[1].Period)

	// 2023-12-30 is a Saturday of ISO week 52.
	require.Len(t, summary.Weekly, 2)
	assert.Equal(t, "2024-W19", summary.Weekly[0].Period)
	assert.Equal(t, "2023-W52", summary.Weekly[1].Period)
}

func TestReportService_Summary_RoundsBucketKm(t *testing.T) {
	services := SetupTestServices(t)

	// Ride distances keep 3 decimals, bucket sums only 2.
	day := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	createRideOn(t, services, day, 0.111, 10, 20, 100, nil)
	createRideOn(t, services, day, 0.112, 10, 20, 100, nil)

	summary, err := services.ReportService.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Monthly, 1)
	assert.Equal(t, 0.22, summary.Monthly[0].Km)
	require.Len(t, summary.Weekly, 1)
	assert.Equal(t, 0.22, summary.Weekly[0].Km)
	require.Len(t, summary.Yearly, 1)
	assert.Equal(t, 0.22, summary.Yearly[0].Km)
}

func TestReportService_Summary_Empty(t *testing.T) {
	services := SetupTestServices(t)

	summary, err := services.ReportService.Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Monthly)
	assert.Empty(t, summary.Weekly)
	assert.Empty(t, summary.Yearly)
}

func TestReportService_HorseReport_StatsAndTopRides(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	longest := createRideOn(t, services, base, 40, 12, 22, 100, &horse.ID)
	fastest := createRideOn(t, services, base.AddDate(0, 0, 1), 10, 16, 38, 120, &horse.ID)
	climbing := createRideOn(t, services, base.AddDate(0, 0, 2), 15, 11, 20, 540, &horse.ID)
	createRideOn(t, services, base.AddDate(0, 0, 3), 5, 9, 18, 60, &horse.ID)

	// A foreign ride must not leak into the report.
	createRideOn(t, services, base, 99, 99, 99, 999, nil)

	report, err := services.ReportService.HorseReport(ctx, horse.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Stats.Rides)
	assert.Equal(t, 70.0, report.Stats.Km)
	assert.Equal(t, 12.0, report.Stats.AvgKmh)
	assert.Equal(t, 38.0, report.Stats.MaxSpeedKmh)

	require.Len(t, report.TopLongest, 3)
	assert.Equal(t, longest.ID, report.TopLongest[0].ID)
	require.Len(t, report.TopFastest, 3)
	assert.Equal(t, fastest.ID, report.TopFastest[0].ID)
	require.Len(t, report.TopClimbing, 3)
	assert.Equal(t, climbing.ID, report.TopClimbing[0].ID)
}

func TestReportService_HorseReport_Fail_UnknownHorse(t *testing.T) {
	services := SetupTestServices(t)

	report, err := services.ReportService.HorseReport(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, horses.ErrHorseNotFound)
	assert.Nil(t, report)
}

func TestBackupService_Archive_ContainsCSVs(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)
	createRideOn(t, services, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), 12.5, 11, 30, 200, &horse.ID)

	archive, err := services.BackupService.Archive(ctx)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	entries := map[string][][]string{}
	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)
		records, err := csv.NewReader(rc).ReadAll()
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[file.Name] = records
	}

	horseRows, ok := entries["horses.csv"]
	require.True(t, ok)
	require.Len(t, horseRows, 2)
	assert.Equal(t, []string{"id", "name", "walk_trot_kmh", "trot_canter_kmh", "notes"}, horseRows[0])
	assert.Equal(t, "Luna", horseRows[1][1])

	rideRows, ok := entries["rides.csv"]
	require.True(t, ok)
	require.Len(t, rideRows, 2)
	assert.Equal(t, "2024-05-12", rideRows[1][1])
	assert.Equal(t, "12.5", rideRows[1][4])
	assert.Equal(t, horse.ID, rideRows[1][3])
}

func TestBackupService_Archive_EmptyDatabase(t *testing.T) {
	services := SetupTestServices(t)

	archive, err := services.BackupService.Archive(context.Background())
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.NotEmpty(t, data, "headers are written even without rows")
	}
}
