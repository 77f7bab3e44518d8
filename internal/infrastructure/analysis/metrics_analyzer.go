package analysis

import (
	"math"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
)

const (
	// earthRadiusM is the mean earth radius used by the haversine formula.
	earthRadiusM = 6371000.0

	// movingSpeedThresholdMps separates standing around from actual movement:
	// 0.5 m/s (1.8 km/h) sits below any walking gait.
	movingSpeedThresholdMps = 0.5
)

type metricsAnalyzer struct {
	logger logger.Logger
}

// NewMetricsAnalyzer creates a TrackAnalyzer computing ride metrics with
// haversine segment distances.
func NewMetricsAnalyzer(logger logger.Logger) (tracks.TrackAnalyzer, error) {
	return &metricsAnalyzer{logger: logger}, nil
}

// Compute derives distance, timing, speed and elevation figures from the given
// points. Segments with missing or non-positive time deltas are clamped to 1 s.
func (a *metricsAnalyzer) Compute(points []tracks.Point) (*tracks.RideMetrics, error) {
	if len(points) == 0 {
		return &tracks.RideMetrics{}, nil
	}

	minElev := points[0].Elevation
	maxElev := points[0].Elevation
	start := points[0].Time
	end := points[len(points)-1].Time
	if end == nil {
		end = start
	}

	var (
		totalDistance  float64
		accumDistance  float64
		movingDistance float64
		movingTime     float64
		ascent         float64
		descent        float64
		maxSpeed       float64
	)

	speedSeries := make([]tracks.SpeedSample, 0, len(points)-1)
	elevProfile := make([]tracks.ProfileSample, 0, len(points)-1)

	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]

		dt := 1.0
		if prev.Time != nil && curr.Time != nil {
			dt = curr.Time.Sub(*prev.Time).Seconds()
		}
		if dt <= 0 {
			dt = 1.0
		}

		d := haversineM(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)
		totalDistance += d
		accumDistance += d

		v := d / dt
		if v > maxSpeed {
			maxSpeed = v
		}
		if v >= movingSpeedThresholdMps {
			movingDistance += d
			movingTime += dt
		}

		speedSeries = append(speedSeries, tracks.SpeedSample{Time: curr.Time, SpeedMps: v})
		elevProfile = append(elevProfile, tracks.ProfileSample{DistanceM: accumDistance, ElevationM: curr.Elevation})

		de := curr.Elevation - prev.Elevation
		if de > 0 {
			ascent += de
		} else {
			descent += -de
		}
		if curr.Elevation < minElev {
			minElev = curr.Elevation
		}
		if curr.Elevation > maxElev {
			maxElev = curr.Elevation
		}
	}

	var totalTime int
	if start != nil && end != nil {
		totalTime = int(end.Sub(*start).Seconds())
	}
	// Clamped time deltas can inflate the moving time past the wall-clock
	// duration; an untimed track has no moving time at all.
	if movingTime > float64(totalTime) {
		movingTime = float64(totalTime)
	}

	var avgSpeed float64
	if totalTime > 0 {
		avgSpeed = totalDistance / float64(totalTime)
	}
	var avgMovingSpeed float64
	if movingTime > 0 {
		avgMovingSpeed = movingDistance / movingTime
	}

	return &tracks.RideMetrics{
		DistanceM:         totalDistance,
		TotalTimeS:        totalTime,
		MovingTimeS:       int(movingTime),
		AvgSpeedMps:       avgSpeed,
		AvgMovingSpeedMps: avgMovingSpeed,
		MaxSpeedMps:       maxSpeed,
		AscentM:           ascent,
		DescentM:          descent,
		MinElevM:          &minElev,
		MaxElevM:          &maxElev,
		StartTime:         start,
		SpeedSeries:       speedSeries,
		ElevProfile:       elevProfile,
	}, nil
}

// haversineM returns the great-circle distance between two coordinates in meters.
func haversineM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusM * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
