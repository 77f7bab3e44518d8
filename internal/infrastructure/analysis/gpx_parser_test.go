//go:build unit
// +build unit

package analysis

import (
	"testing"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGpxParser_Parse_Success(t *testing.T) {
	parser, err := NewGpxParser(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	start := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	data := testutil.SampleGpxDocument(start)

	points, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 48.000, points[0].Latitude)
	assert.Equal(t, 16.000, points[0].Longitude)
	assert.Equal(t, 250.0, points[0].Elevation)
	require.NotNil(t, points[0].Time)
	assert.Equal(t, start, *points[0].Time)

	require.NotNil(t, points[2].Time)
	assert.Equal(t, start.Add(2*time.Minute), *points[2].Time)
}

func TestGpxParser_Parse_PointsWithoutTimeOrElevation(t *testing.T) {
	parser, err := NewGpxParser(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>
    <trkpt lat="48.0" lon="16.0"></trkpt>
    <trkpt lat="48.001" lon="16.0"></trkpt>
  </trkseg></trk>
</gpx>`)

	points, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Nil(t, points[0].Time)
	assert.Equal(t, 0.0, points[0].Elevation)
}

func TestGpxParser_Parse_MultipleSegmentsFlattened(t *testing.T) {
	parser, err := NewGpxParser(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>
    <trkpt lat="48.0" lon="16.0"><ele>200</ele></trkpt>
  </trkseg><trkseg>
    <trkpt lat="48.1" lon="16.1"><ele>210</ele></trkpt>
  </trkseg></trk>
  <trk><trkseg>
    <trkpt lat="48.2" lon="16.2"><ele>220</ele></trkpt>
  </trkseg></trk>
</gpx>`)

	points, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 220.0, points[2].Elevation)
}

func TestGpxParser_Parse_InvalidDocument(t *testing.T) {
	parser, err := NewGpxParser(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = parser.Parse([]byte("not a gpx document"))
	require.Error(t, err)
}
