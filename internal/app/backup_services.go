package app

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/csvutil"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
)

// backupService implements the BackupService interface
type backupService struct {
	horseRepo horses.HorseRepository
	rideRepo  rides.RideRepository
	logger    logger.Logger
}

// NewBackupService creates a new instance of backupService
func NewBackupService(horseRepo horses.HorseRepository, rideRepo rides.RideRepository, logger logger.Logger) (rides.BackupService, error) {
	return &backupService{
		horseRepo: horseRepo,
		rideRepo:  rideRepo,
		logger:    logger,
	}, nil
}

// Archive renders all horses and rides into a zip of CSV files.
func (s *backupService) Archive(ctx context.Context) ([]byte, error) {
	horseList, err := s.horseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list horses: %w", err)
	}

	query := rides.NewRideQuery()
	query.SortBy = "date_time_created"
	query.SortOrder = "asc"
	rideList, err := s.rideRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	if err := writeHorsesCSV(archive, horseList); err != nil {
		return nil, err
	}
	if err := writeRidesCSV(archive, rideList); err != nil {
		return nil, err
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize backup archive: %w", err)
	}

	s.logger.Info("Rendered backup of ", len(horseList), " horses and ", len(rideList), " rides")
	return buf.Bytes(), nil
}

func writeHorsesCSV(archive *zip.Writer, horseList []*horses.Horse) error {
	rows := make([][]string, 0, len(horseList)+1)
	rows = append(rows, []string{"id", "name", "walk_trot_kmh", "trot_canter_kmh", "notes"})
	for _, horse := range horseList {
		rows = append(rows, []string{
			horse.ID,
			horse.Name,
			formatOptionalFloat(horse.WalkTrotKmh),
			formatOptionalFloat(horse.TrotCanterKmh),
			formatOptionalString(horse.Notes),
		})
	}
	if err := csvutil.WriteEntry(archive, "horses.csv", rows); err != nil {
		return fmt.Errorf("failed to write horses.csv: %w", err)
	}
	return nil
}

func writeRidesCSV(archive *zip.Writer, rideList []*rides.Ride) error {
	rows := make([][]string, 0, len(rideList)+1)
	rows = append(rows, []string{
		"id", "date", "title", "horse_id", "distance_km", "avg_speed_kmh",
		"max_speed_kmh", "ascent_m", "descent_m", "track_ref",
	})
	for _, ride := range rideList {
		rows = append(rows, []string{
			ride.ID,
			ride.RideDate.Format(isoDateLayout),
			ride.Title,
			formatOptionalString(ride.HorseID),
			formatFloat(ride.DistanceKm),
			formatFloat(ride.AvgSpeedKmh),
			formatFloat(ride.MaxSpeedKmh),
			formatFloat(ride.AscentM),
			formatFloat(ride.DescentM),
			ride.TrackRef,
		})
	}
	if err := csvutil.WriteEntry(archive, "rides.csv", rows); err != nil {
		return fmt.Errorf("failed to write rides.csv: %w", err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return formatFloat(*value)
}

func formatOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
