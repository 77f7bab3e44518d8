//go:build unit
// +build unit

package analysis

import (
	"testing"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// northward step of 0.001 degrees latitude, roughly 111.2 m on the WGS84 sphere
const latStepM = 111.19

func timedPoint(t0 time.Time, offsetS int, lat, lon, elev float64) tracks.Point {
	ts := t0.Add(time.Duration(offsetS) * time.Second)
	return tracks.Point{Time: &ts, Latitude: lat, Longitude: lon, Elevation: elev}
}

func TestMetricsAnalyzer_Compute_EmptyTrack(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	metrics, err := analyzer.Compute(nil)
	require.NoError(t, err)

	assert.Zero(t, metrics.DistanceM)
	assert.Zero(t, metrics.TotalTimeS)
	assert.Zero(t, metrics.MovingTimeS)
	assert.Nil(t, metrics.MinElevM)
	assert.Nil(t, metrics.MaxElevM)
	assert.Nil(t, metrics.StartTime)
	assert.Empty(t, metrics.SpeedSeries)
}

func TestMetricsAnalyzer_Compute_StraightRide(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	t0 := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	points := []tracks.Point{
		timedPoint(t0, 0, 48.000, 16.000, 250),
		timedPoint(t0, 60, 48.001, 16.000, 260),
		timedPoint(t0, 120, 48.002, 16.000, 255),
	}

	metrics, err := analyzer.Compute(points)
	require.NoError(t, err)

	assert.InDelta(t, 2*latStepM, metrics.DistanceM, 1.0)
	assert.Equal(t, 120, metrics.TotalTimeS)
	assert.Equal(t, 120, metrics.MovingTimeS)
	assert.InDelta(t, 10.0, metrics.AscentM, 0.001)
	assert.InDelta(t, 5.0, metrics.DescentM, 0.001)
	require.NotNil(t, metrics.MinElevM)
	require.NotNil(t, metrics.MaxElevM)
	assert.Equal(t, 250.0, *metrics.MinElevM)
	assert.Equal(t, 260.0, *metrics.MaxElevM)
	require.NotNil(t, metrics.StartTime)
	assert.Equal(t, t0, *metrics.StartTime)

	// avg speed equals distance over wall-clock time
	assert.InDelta(t, metrics.DistanceM/120, metrics.AvgSpeedMps, 0.001)
	assert.GreaterOrEqual(t, metrics.MaxSpeedMps, metrics.AvgMovingSpeedMps)

	require.Len(t, metrics.SpeedSeries, 2)
	require.Len(t, metrics.ElevProfile, 2)
}

func TestMetricsAnalyzer_Compute_StandingStillExcludedFromMovingTime(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	t0 := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	points := []tracks.Point{
		timedPoint(t0, 0, 48.000, 16.000, 250),
		timedPoint(t0, 60, 48.001, 16.000, 250),
		// ten minutes standing still
		timedPoint(t0, 660, 48.001, 16.000, 250),
		timedPoint(t0, 720, 48.002, 16.000, 250),
	}

	metrics, err := analyzer.Compute(points)
	require.NoError(t, err)

	assert.Equal(t, 720, metrics.TotalTimeS)
	assert.Equal(t, 120, metrics.MovingTimeS)
	assert.Greater(t, metrics.AvgMovingSpeedMps, metrics.AvgSpeedMps)
}

func TestMetricsAnalyzer_Compute_NonPositiveTimeDeltaClamped(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	t0 := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	points := []tracks.Point{
		timedPoint(t0, 0, 48.000, 16.000, 250),
		// same timestamp as its predecessor
		timedPoint(t0, 0, 48.001, 16.000, 250),
		timedPoint(t0, 60, 48.002, 16.000, 250),
	}

	metrics, err := analyzer.Compute(points)
	require.NoError(t, err)

	// the zero-delta segment is treated as one second, so its speed stays finite
	require.Len(t, metrics.SpeedSeries, 2)
	assert.InDelta(t, latStepM, metrics.SpeedSeries[0].SpeedMps, 1.0)
	assert.LessOrEqual(t, metrics.MovingTimeS, metrics.TotalTimeS)
}

func TestMetricsAnalyzer_Compute_UntimedTrack(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	points := []tracks.Point{
		{Latitude: 48.000, Longitude: 16.000, Elevation: 250},
		{Latitude: 48.001, Longitude: 16.000, Elevation: 255},
	}

	metrics, err := analyzer.Compute(points)
	require.NoError(t, err)

	assert.InDelta(t, latStepM, metrics.DistanceM, 1.0)
	assert.Zero(t, metrics.TotalTimeS)
	assert.Zero(t, metrics.MovingTimeS)
	assert.Zero(t, metrics.AvgSpeedMps)
	assert.Zero(t, metrics.AvgMovingSpeedMps)
	assert.Nil(t, metrics.StartTime)
}

func TestMetricsAnalyzer_Compute_ProfileDistancesNonDecreasing(t *testing.T) {
	analyzer, err := NewMetricsAnalyzer(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	t0 := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	points := []tracks.Point{
		timedPoint(t0, 0, 48.000, 16.000, 250),
		timedPoint(t0, 30, 48.001, 16.001, 251),
		timedPoint(t0, 60, 48.001, 16.001, 251),
		timedPoint(t0, 90, 48.000, 16.000, 250),
	}

	metrics, err := analyzer.Compute(points)
	require.NoError(t, err)

	last := 0.0
	for _, sample := range metrics.ElevProfile {
		assert.GreaterOrEqual(t, sample.DistanceM, last)
		last = sample.DistanceM
	}
}
