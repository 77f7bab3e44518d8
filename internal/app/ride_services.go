package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/telemetry"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/google/uuid"
)

const (
	gpxContentType = "application/gpx+xml"

	// presignExpiry bounds the lifetime of presigned track download URLs.
	presignExpiry = 10 * time.Minute

	isoDateLayout = "2006-01-02"
)

const mpsToKmh = 3.6

// rideUploadService implements the RideUploadService interface for ingesting GPX uploads
type rideUploadService struct {
	trackStore rides.TrackStore
	rideRepo   rides.RideRepository
	horseRepo  horses.HorseRepository
	parser     tracks.TrackParser
	analyzer   tracks.TrackAnalyzer
	telemetry  *telemetry.Telemetry
	logger     logger.Logger
}

// NewRideUploadService creates a new instance of RideUploadService
func NewRideUploadService(
	trackStore rides.TrackStore,
	rideRepo rides.RideRepository,
	horseRepo horses.HorseRepository,
	parser tracks.TrackParser,
	analyzer tracks.TrackAnalyzer,
	telemetry *telemetry.Telemetry,
	logger logger.Logger,
) (rides.RideUploadService, error) {
	return &rideUploadService{
		trackStore: trackStore,
		rideRepo:   rideRepo,
		horseRepo:  horseRepo,
		parser:     parser,
		analyzer:   analyzer,
		telemetry:  telemetry,
		logger:     logger,
	}, nil
}

// Upload stores the GPX file carried by the multipart form, computes ride
// metrics and persists the resulting ride.
func (s *rideUploadService) Upload(ctx context.Context, form *multipart.Form, opts rides.UploadOptions) (*rides.Ride, error) {
	if form == nil || len(form.File["file"]) == 0 {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("no GPX file provided in upload request")
	}

	header := form.File["file"][0]
	data, err := readFileHeader(header)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	points, err := s.parser.Parse(data)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("failed to parse GPX upload %q: %w", header.Filename, err)
	}

	metrics, err := s.analyzer.Compute(points)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("failed to compute ride metrics: %w", err)
	}

	objectName := strings.ReplaceAll(uuid.NewString(), "-", "") + ".gpx"
	trackRef, err := s.trackStore.Upload(ctx, objectName, data)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("failed to store track: %w", err)
	}

	horseID, err := s.resolveHorse(ctx, opts.HorseName)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, err
	}

	rideDate, err := resolveRideDate(opts.RideDate, metrics.StartTime)
	if err != nil {
		s.telemetry.IncUploadFailure()
		return nil, err
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = header.Filename
	}

	ride := &rides.Ride{
		ID:                uuid.NewString(),
		DateTimeCreated:   time.Now().UTC(),
		Title:             title,
		RideDate:          rideDate,
		DistanceKm:        round(metrics.DistanceM/1000.0, 3),
		TotalTimeS:        metrics.TotalTimeS,
		MovingTimeS:       metrics.MovingTimeS,
		AvgSpeedKmh:       round(metrics.AvgSpeedMps*mpsToKmh, 2),
		AvgMovingSpeedKmh: round(metrics.AvgMovingSpeedMps*mpsToKmh, 2),
		MaxSpeedKmh:       round(metrics.MaxSpeedMps*mpsToKmh, 2),
		AscentM:           round(metrics.AscentM, 1),
		DescentM:          round(metrics.DescentM, 1),
		MinElevM:          metrics.MinElevM,
		MaxElevM:          metrics.MaxElevM,
		TrackRef:          trackRef,
		HorseID:           horseID,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		s.telemetry.IncUploadFailure()
		return nil, fmt.Errorf("failed to save ride: %w", err)
	}

	s.telemetry.ObserveUpload(len(points))
	s.logger.Info("Ingested ride ", ride.ID, " from upload ", header.Filename)
	return ride, nil
}

// resolveHorse finds the named horse or registers it on the fly.
func (s *rideUploadService) resolveHorse(ctx context.Context, name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	horse, err := s.horseRepo.GetByName(ctx, name)
	if err == nil {
		return &horse.ID, nil
	}
	if !errors.Is(err, horses.ErrHorseNotFound) {
		return nil, fmt.Errorf("failed to look up horse %q: %w", name, err)
	}

	horse = &horses.Horse{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now().UTC(),
		Name:            name,
	}
	if err := s.horseRepo.Create(ctx, horse); err != nil {
		return nil, fmt.Errorf("failed to create horse %q: %w", name, err)
	}

	s.logger.Info("Created horse ", horse.ID, " named ", name)
	return &horse.ID, nil
}

// resolveRideDate picks the explicit form date, then the track start date,
// then today.
func resolveRideDate(formDate string, startTime *time.Time) (time.Time, error) {
	if trimmed := strings.TrimSpace(formDate); trimmed != "" {
		parsed, err := time.Parse(isoDateLayout, trimmed)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid ride date %q: %w", trimmed, err)
		}
		return parsed, nil
	}

	base := time.Now().UTC()
	if startTime != nil {
		base = startTime.UTC()
	}
	return time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC), nil
}

// rideMetadataService implements the RideMetadataService interface for
// retrieving and deleting rides
type rideMetadataService struct {
	rideRepo   rides.RideRepository
	trackStore rides.TrackStore
	logger     logger.Logger
}

// NewRideMetadataService creates a new instance of rideMetadataService
func NewRideMetadataService(rideRepo rides.RideRepository, trackStore rides.TrackStore, logger logger.Logger) (rides.RideMetadataService, error) {
	return &rideMetadataService{
		rideRepo:   rideRepo,
		trackStore: trackStore,
		logger:     logger,
	}, nil
}

// List retrieves rides' metadata considering a query filter when set.
func (s *rideMetadataService) List(ctx context.Context, query *rides.RideQuery) ([]*rides.Ride, error) {
	rideList, err := s.rideRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return rideList, nil
}

// GetByID retrieves the ride metadata by ID.
func (s *rideMetadataService) GetByID(ctx context.Context, rideID string) (*rides.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ride: %w", err)
	}
	return ride, nil
}

// DeleteByID deletes a ride and, for locally stored tracks, its GPX file.
func (s *rideMetadataService) DeleteByID(ctx context.Context, rideID string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return fmt.Errorf("failed to fetch ride: %w", err)
	}

	// Remote objects stay; only locally stored files are cleaned up, and a
	// missing file must not block the delete.
	if strings.HasPrefix(ride.TrackRef, "/") {
		if err := s.trackStore.Delete(ctx, ride.TrackRef); err != nil {
			s.logger.Warn("Could not delete track file ", ride.TrackRef, ": ", err)
		}
	}

	if err := s.rideRepo.DeleteByID(ctx, rideID); err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	return nil
}

// rideDownloadService implements the RideDownloadService interface
type rideDownloadService struct {
	rideRepo   rides.RideRepository
	trackStore rides.TrackStore
	logger     logger.Logger
}

// NewRideDownloadService creates a new instance of rideDownloadService
func NewRideDownloadService(rideRepo rides.RideRepository, trackStore rides.TrackStore, logger logger.Logger) (rides.RideDownloadService, error) {
	return &rideDownloadService{
		rideRepo:   rideRepo,
		trackStore: trackStore,
		logger:     logger,
	}, nil
}

// DownloadByID resolves the ride's track reference into file bytes or a
// redirect target.
func (s *rideDownloadService) DownloadByID(ctx context.Context, rideID string) (*rides.TrackDownload, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ride: %w", err)
	}

	switch {
	case strings.HasPrefix(ride.TrackRef, "http"):
		return &rides.TrackDownload{RedirectURL: ride.TrackRef}, nil

	case strings.HasPrefix(ride.TrackRef, "s3://"):
		url, err := s.trackStore.PresignURL(ctx, ride.TrackRef, presignExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to presign track: %w", err)
		}
		return &rides.TrackDownload{RedirectURL: url}, nil

	default:
		data, err := s.trackStore.Download(ctx, ride.TrackRef)
		if err != nil {
			return nil, fmt.Errorf("failed to load track: %w", err)
		}
		return &rides.TrackDownload{
			FileName:    filepath.Base(ride.TrackRef),
			ContentType: gpxContentType,
			Data:        data,
		}, nil
	}
}

// rideAnalysisService implements the RideAnalysisService interface
type rideAnalysisService struct {
	rideRepo   rides.RideRepository
	trackStore rides.TrackStore
	fetcher    rides.TrackFetcher
	parser     tracks.TrackParser
	analyzer   tracks.TrackAnalyzer
	telemetry  *telemetry.Telemetry
	logger     logger.Logger
}

// NewRideAnalysisService creates a new instance of rideAnalysisService
func NewRideAnalysisService(
	rideRepo rides.RideRepository,
	trackStore rides.TrackStore,
	fetcher rides.TrackFetcher,
	parser tracks.TrackParser,
	analyzer tracks.TrackAnalyzer,
	telemetry *telemetry.Telemetry,
	logger logger.Logger,
) (rides.RideAnalysisService, error) {
	return &rideAnalysisService{
		rideRepo:   rideRepo,
		trackStore: trackStore,
		fetcher:    fetcher,
		parser:     parser,
		analyzer:   analyzer,
		telemetry:  telemetry,
		logger:     logger,
	}, nil
}

// AnalyzeByID loads the ride's track and recomputes its detailed analysis.
func (s *rideAnalysisService) AnalyzeByID(ctx context.Context, rideID string) (*rides.RideAnalysis, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ride: %w", err)
	}

	data, err := s.loadTrack(ctx, ride.TrackRef)
	if err != nil {
		if errors.Is(err, rides.ErrTrackMissing) {
			s.logger.Warn("Track of ride ", rideID, " is gone: ", err)
			return &rides.RideAnalysis{TrackMissing: true}, nil
		}
		return nil, err
	}

	points, err := s.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored track: %w", err)
	}

	metrics, err := s.analyzer.Compute(points)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ride metrics: %w", err)
	}

	analysis := &rides.RideAnalysis{
		SpeedSeries:      make([]rides.SpeedPoint, len(metrics.SpeedSeries)),
		ElevationProfile: make([]rides.ProfilePoint, len(metrics.ElevProfile)),
		Coordinates:      make([]rides.Coordinate, len(points)),
	}
	for i, sample := range metrics.SpeedSeries {
		analysis.SpeedSeries[i] = rides.SpeedPoint{Time: sample.Time, SpeedKmh: sample.SpeedMps * mpsToKmh}
	}
	for i, sample := range metrics.ElevProfile {
		analysis.ElevationProfile[i] = rides.ProfilePoint{DistanceKm: sample.DistanceM / 1000.0, ElevationM: sample.ElevationM}
	}
	for i, point := range points {
		analysis.Coordinates[i] = rides.Coordinate{Latitude: point.Latitude, Longitude: point.Longitude, ElevationM: point.Elevation}
	}

	s.telemetry.IncAnalysis()
	return analysis, nil
}

func (s *rideAnalysisService) loadTrack(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http") {
		return s.fetcher.Fetch(ctx, ref)
	}
	return s.trackStore.Download(ctx, ref)
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return io.ReadAll(file)
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(x*factor) / factor
}
