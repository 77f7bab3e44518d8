package testutil

import (
	"fmt"
	"strings"
	"time"
)

// GpxTrackPoint describes one <trkpt> of a generated test document.
type GpxTrackPoint struct {
	Lat  float64
	Lon  float64
	Elev float64
	Time time.Time // zero time omits the <time> element
}

// BuildGpxDocument renders a minimal single-segment GPX 1.1 document from the
// given points.
func BuildGpxDocument(points []GpxTrackPoint) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="gpx-analyzer-test" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	b.WriteString("  <trk><name>test ride</name><trkseg>\n")
	for _, p := range points {
		fmt.Fprintf(&b, `    <trkpt lat="%f" lon="%f"><ele>%f</ele>`, p.Lat, p.Lon, p.Elev)
		if !p.Time.IsZero() {
			fmt.Fprintf(&b, "<time>%s</time>", p.Time.UTC().Format(time.RFC3339))
		}
		b.WriteString("</trkpt>\n")
	}
	b.WriteString("  </trkseg></trk>\n</gpx>\n")
	return []byte(b.String())
}

// SampleGpxDocument returns a small, valid ride starting at the given time.
func SampleGpxDocument(start time.Time) []byte {
	return BuildGpxDocument([]GpxTrackPoint{
		{Lat: 48.000, Lon: 16.000, Elev: 250, Time: start},
		{Lat: 48.001, Lon: 16.000, Elev: 255, Time: start.Add(time.Minute)},
		{Lat: 48.002, Lon: 16.000, Elev: 252, Time: start.Add(2 * time.Minute)},
	})
}
