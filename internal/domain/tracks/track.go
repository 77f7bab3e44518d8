package tracks

import "time"

// Point is a single GPX track point. Time is nil when the source point carries
// no timestamp.
type Point struct {
	Time      *time.Time
	Latitude  float64
	Longitude float64
	Elevation float64
}

// SpeedSample is one entry of a ride speed series.
type SpeedSample struct {
	Time     *time.Time
	SpeedMps float64
}

// ProfileSample is one entry of an elevation profile, keyed by the cumulative
// distance from the track start.
type ProfileSample struct {
	DistanceM  float64
	ElevationM float64
}

// RideMetrics holds every figure computed from a track. Speeds are in m/s,
// distances and elevations in meters.
type RideMetrics struct {
	DistanceM         float64
	TotalTimeS        int
	MovingTimeS       int
	AvgSpeedMps       float64
	AvgMovingSpeedMps float64
	MaxSpeedMps       float64
	AscentM           float64
	DescentM          float64
	MinElevM          *float64
	MaxElevM          *float64
	StartTime         *time.Time
	SpeedSeries       []SpeedSample
	ElevProfile       []ProfileSample
}
