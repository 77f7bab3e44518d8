// Package telemetry wires the prometheus instrumentation of the service.
package telemetry

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Telemetry holds the prometheus registry and the application metrics.
type Telemetry struct {
	registry *prometheus.Registry

	uploadsTotal        prometheus.Counter
	uploadFailuresTotal prometheus.Counter
	analysesTotal       prometheus.Counter
	trackPoints         prometheus.Histogram
	requestsTotal       *prometheus.CounterVec
}

// NewTelemetry creates a Telemetry with its own registry.
func NewTelemetry() *Telemetry {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Telemetry{
		registry: registry,
		uploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpx_uploads_total",
			Help: "Number of successfully ingested GPX uploads.",
		}),
		uploadFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpx_upload_failures_total",
			Help: "Number of GPX uploads rejected or failed.",
		}),
		analysesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpx_analyses_total",
			Help: "Number of ride analyses computed.",
		}),
		trackPoints: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gpx_upload_track_points",
			Help:    "Track point count per uploaded GPX file.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveUpload records a successful upload of a track with the given point count.
func (t *Telemetry) ObserveUpload(points int) {
	if t == nil {
		return
	}
	t.uploadsTotal.Inc()
	t.trackPoints.Observe(float64(points))
}

// IncUploadFailure records a rejected or failed upload.
func (t *Telemetry) IncUploadFailure() {
	if t == nil {
		return
	}
	t.uploadFailuresTotal.Inc()
}

// IncAnalysis records one computed ride analysis.
func (t *Telemetry) IncAnalysis() {
	if t == nil {
		return
	}
	t.analysesTotal.Inc()
}

// Handler returns the /metrics exposition handler.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Middleware returns a gin middleware counting requests per route and status.
func (t *Telemetry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		t.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
