package tracks

// TrackParser extracts chronological track points from raw GPX data.
type TrackParser interface {
	// Parse flattens all tracks and segments of a GPX document into a single
	// point sequence. It returns any error encountered while decoding.
	Parse(data []byte) ([]Point, error)
}

// TrackAnalyzer computes ride metrics from a point sequence.
type TrackAnalyzer interface {
	// Compute derives distance, timing, speed and elevation figures from the
	// given points. An empty input yields zero metrics, not an error.
	Compute(points []Point) (*RideMetrics, error)
}
