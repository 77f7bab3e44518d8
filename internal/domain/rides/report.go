package rides

import "context"

// PeriodRow aggregates the rides falling into one calendar bucket.
type PeriodRow struct {
	Period string  // "2024-05", "2024-W19" or "2024"
	Rides  int
	Km     float64
	AvgKmh float64 // mean of the rides' average speeds
}

// Summary groups the period aggregates of a ride set.
type Summary struct {
	Monthly []PeriodRow
	Weekly  []PeriodRow
	Yearly  []PeriodRow
}

// HorseStats are the lifetime figures of a single horse.
type HorseStats struct {
	Rides       int
	Km          float64
	AvgKmh      float64
	MaxSpeedKmh float64
}

// HorseReport is the full statistics view of one horse.
type HorseReport struct {
	Stats       HorseStats
	Summary     Summary
	TopLongest  []*Ride
	TopFastest  []*Ride
	TopClimbing []*Ride
}

// ReportService computes aggregated statistics over rides.
type ReportService interface {
	// Summary aggregates all rides into monthly, weekly and yearly rows.
	Summary(ctx context.Context) (*Summary, error)

	// HorseReport aggregates the rides of one horse and picks its top rides by
	// distance, top speed and ascent.
	HorseReport(ctx context.Context, horseID string) (*HorseReport, error)
}

// BackupService produces a portable archive of the full database contents.
type BackupService interface {
	// Archive renders all horses and rides into a zip of CSV files.
	Archive(ctx context.Context) ([]byte, error)
}
