package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
)

const topRideCount = 3

// reportService implements the ReportService interface for aggregated ride
// statistics
type reportService struct {
	rideRepo  rides.RideRepository
	horseRepo horses.HorseRepository
	logger    logger.Logger
}

// NewReportService creates a new instance of reportService
func NewReportService(rideRepo rides.RideRepository, horseRepo horses.HorseRepository, logger logger.Logger) (rides.ReportService, error) {
	return &reportService{
		rideRepo:  rideRepo,
		horseRepo: horseRepo,
		logger:    logger,
	}, nil
}

// Summary aggregates all rides into monthly, weekly and yearly rows.
func (s *reportService) Summary(ctx context.Context) (*rides.Summary, error) {
	rideList, err := s.rideRepo.List(ctx, rides.NewRideQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return buildSummary(rideList), nil
}

// HorseReport aggregates the rides of one horse and picks its top rides.
func (s *reportService) HorseReport(ctx context.Context, horseID string) (*rides.HorseReport, error) {
	if _, err := s.horseRepo.GetByID(ctx, horseID); err != nil {
		return nil, fmt.Errorf("failed to fetch horse: %w", err)
	}

	query := rides.NewRideQuery()
	query.HorseID = horseID
	rideList, err := s.rideRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides of horse %s: %w", horseID, err)
	}

	report := &rides.HorseReport{
		Stats:       buildHorseStats(rideList),
		Summary:     *buildSummary(rideList),
		TopLongest:  topRides(rideList, func(a, b *rides.Ride) bool { return a.DistanceKm > b.DistanceKm }),
		TopFastest:  topRides(rideList, func(a, b *rides.Ride) bool { return a.MaxSpeedKmh > b.MaxSpeedKmh }),
		TopClimbing: topRides(rideList, func(a, b *rides.Ride) bool { return a.AscentM > b.AscentM }),
	}
	return report, nil
}

func buildHorseStats(rideList []*rides.Ride) rides.HorseStats {
	stats := rides.HorseStats{Rides: len(rideList)}
	var speedSum float64
	for _, ride := range rideList {
		stats.Km += ride.DistanceKm
		speedSum += ride.AvgSpeedKmh
		if ride.MaxSpeedKmh > stats.MaxSpeedKmh {
			stats.MaxSpeedKmh = ride.MaxSpeedKmh
		}
	}
	if len(rideList) > 0 {
		stats.AvgKmh = round(speedSum/float64(len(rideList)), 2)
	}
	stats.Km = round(stats.Km, 3)
	return stats
}

func buildSummary(rideList []*rides.Ride) *rides.Summary {
	return &rides.Summary{
		Monthly: accumPeriods(rideList, monthKey),
		Weekly:  accumPeriods(rideList, weekKey),
		Yearly:  accumPeriods(rideList, yearKey),
	}
}

func monthKey(ride *rides.Ride) string { return ride.RideDate.Format("2006-01") }
func yearKey(ride *rides.Ride) string  { return ride.RideDate.Format("2006") }

func weekKey(ride *rides.Ride) string {
	year, week := ride.RideDate.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// accumPeriods buckets rides by the given calendar key and returns the rows
// newest first.
func accumPeriods(rideList []*rides.Ride, key func(*rides.Ride) string) []rides.PeriodRow {
	type bucket struct {
		rides    int
		km       float64
		speedSum float64
	}
	buckets := make(map[string]*bucket)
	for _, ride := range rideList {
		period := key(ride)
		b := buckets[period]
		if b == nil {
			b = &bucket{}
			buckets[period] = b
		}
		b.rides++
		b.km += ride.DistanceKm
		b.speedSum += ride.AvgSpeedKmh
	}

	rows := make([]rides.PeriodRow, 0, len(buckets))
	for period, b := range buckets {
		rows = append(rows, rides.PeriodRow{
			Period: period,
			Rides:  b.rides,
			Km:     round(b.km, 2),
			AvgKmh: round(b.speedSum/float64(b.rides), 2),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period > rows[j].Period })
	return rows
}

// topRides returns the best rides under the given ordering, at most
// topRideCount of them.
func topRides(rideList []*rides.Ride, better func(a, b *rides.Ride) bool) []*rides.Ride {
	sorted := make([]*rides.Ride, len(rideList))
	copy(sorted, rideList)
	sort.SliceStable(sorted, func(i, j int) bool { return better(sorted[i], sorted[j]) })
	if len(sorted) > topRideCount {
		sorted = sorted[:topRideCount]
	}
	return sorted
}
