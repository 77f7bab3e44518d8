package rides

import (
	"context"
	"errors"
	"mime/multipart"
	"time"
)

// ErrRideNotFound reports a lookup for a ride that does not exist.
var ErrRideNotFound = errors.New("ride not found")

// ErrTrackMissing reports that a ride's stored GPX file can no longer be read.
var ErrTrackMissing = errors.New("track file missing")

// ErrPresignUnsupported reports that the active track store cannot produce
// presigned URLs.
var ErrPresignUnsupported = errors.New("presigned URLs not supported")

// UploadOptions carries the optional form fields accompanying a GPX upload.
type UploadOptions struct {
	HorseName string
	Title     string
	RideDate  string // ISO date, defaults to the track start date when empty
}

// RideUploadService defines methods for ingesting GPX uploads.
type RideUploadService interface {
	// Upload stores the GPX file carried by the multipart form, computes ride
	// metrics and persists the resulting ride. A horse named in opts is
	// resolved or created on the fly.
	Upload(ctx context.Context, form *multipart.Form, opts UploadOptions) (*Ride, error)
}

// RideMetadataService defines methods for retrieving rides and deleting a ride
// along with its stored track.
type RideMetadataService interface {
	// List retrieves rides' metadata considering a query filter when set.
	List(ctx context.Context, query *RideQuery) ([]*Ride, error)

	// GetByID retrieves the ride metadata by ID.
	GetByID(ctx context.Context, rideID string) (*Ride, error)

	// DeleteByID deletes a ride and, for locally stored tracks, its GPX file.
	DeleteByID(ctx context.Context, rideID string) error
}

// RideAnalysis is the full per-ride analysis served to clients.
type RideAnalysis struct {
	SpeedSeries      []SpeedPoint
	ElevationProfile []ProfilePoint
	Coordinates      []Coordinate
	TrackMissing     bool
}

// SpeedPoint is one speed sample in km/h.
type SpeedPoint struct {
	Time     *time.Time `json:"t"`
	SpeedKmh float64    `json:"v"`
}

// ProfilePoint is one elevation sample keyed by cumulative distance in km.
type ProfilePoint struct {
	DistanceKm float64 `json:"d"`
	ElevationM float64 `json:"e"`
}

// Coordinate is a lat/lon/elevation triple.
type Coordinate struct {
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	ElevationM float64 `json:"ele"`
}

// RideAnalysisService recomputes the detailed analysis of a stored ride.
type RideAnalysisService interface {
	// AnalyzeByID loads the ride's track and recomputes its speed series,
	// elevation profile and coordinates. A ride whose track is gone yields an
	// analysis with TrackMissing set, not an error.
	AnalyzeByID(ctx context.Context, rideID string) (*RideAnalysis, error)
}

// TrackDownload is the result of resolving a ride's stored GPX for download.
// Either Data is set (serve the bytes) or RedirectURL is set (redirect).
type TrackDownload struct {
	FileName    string
	ContentType string
	Data        []byte
	RedirectURL string
}

// RideDownloadService defines methods for downloading raw GPX tracks.
type RideDownloadService interface {
	// DownloadByID resolves the ride's track reference into file bytes or a
	// redirect target (public URL or presigned object URL).
	DownloadByID(ctx context.Context, rideID string) (*TrackDownload, error)
}

// RideRepository defines the interface for Ride-related persistence operations
type RideRepository interface {
	// Create adds a new Ride to the database
	Create(ctx context.Context, ride *Ride) error
	// List lists Rides in the database with optional filter
	List(ctx context.Context, query *RideQuery) ([]*Ride, error)
	// GetByID retrieves a Ride from the database by ID
	GetByID(ctx context.Context, rideID string) (*Ride, error)
	// UpdateByID updates a Ride in the database by ID
	UpdateByID(ctx context.Context, ride *Ride) error
	// DeleteByID deletes a Ride in the database by ID
	DeleteByID(ctx context.Context, rideID string) error
	// CountByHorse counts the rides assigned to a horse
	CountByHorse(ctx context.Context, horseID string) (int64, error)
	// DetachHorse clears the horse assignment of every ride of a horse
	DetachHorse(ctx context.Context, horseID string) error
}

// TrackStore is an interface for storing and retrieving raw GPX tracks.
type TrackStore interface {
	// Upload stores raw GPX data under the given object name and returns the
	// track reference future operations use.
	Upload(ctx context.Context, name string, data []byte) (string, error)

	// Download retrieves a track's content by its reference. It returns an
	// error wrapping ErrTrackMissing when the track no longer exists.
	Download(ctx context.Context, ref string) ([]byte, error)

	// Delete removes a stored track by its reference.
	Delete(ctx context.Context, ref string) error

	// PresignURL returns a temporary public URL for the track, or an error
	// wrapping ErrPresignUnsupported.
	PresignURL(ctx context.Context, ref string, expiry time.Duration) (string, error)
}

// TrackFetcher retrieves GPX content referenced by plain http(s) URLs.
type TrackFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
