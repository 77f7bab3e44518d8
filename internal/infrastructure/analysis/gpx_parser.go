package analysis

import (
	"fmt"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/tkrajina/gpxgo/gpx"
)

type gpxParser struct {
	logger logger.Logger
}

// NewGpxParser creates a TrackParser backed by the gpxgo decoder.
func NewGpxParser(logger logger.Logger) (tracks.TrackParser, error) {
	return &gpxParser{logger: logger}, nil
}

// Parse flattens all tracks and segments of a GPX document into a single point
// sequence. Timestamps are normalized to UTC; points without elevation get 0.
func (p *gpxParser) Parse(data []byte) ([]tracks.Point, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX data: %w", err)
	}

	var points []tracks.Point
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, pnt := range segment.Points {
				point := tracks.Point{
					Latitude:  pnt.Latitude,
					Longitude: pnt.Longitude,
				}
				if pnt.Elevation.NotNull() {
					point.Elevation = pnt.Elevation.Value()
				}
				if !pnt.Timestamp.IsZero() {
					ts := pnt.Timestamp.UTC()
					point.Time = &ts
				}
				points = append(points, point)
			}
		}
	}

	return points, nil
}
