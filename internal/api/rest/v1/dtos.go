package v1

import (
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

func newErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: &message}
}

// RideResponse is the JSON view of a ride.
type RideResponse struct {
	ID                string    `json:"id"`
	DateTimeCreated   time.Time `json:"dateTimeCreated"`
	Title             string    `json:"title"`
	RideDate          string    `json:"rideDate"`
	DistanceKm        float64   `json:"distanceKm"`
	TotalTimeS        int       `json:"totalTimeS"`
	MovingTimeS       int       `json:"movingTimeS"`
	AvgSpeedKmh       float64   `json:"avgSpeedKmh"`
	AvgMovingSpeedKmh float64   `json:"avgMovingSpeedKmh"`
	MaxSpeedKmh       float64   `json:"maxSpeedKmh"`
	AscentM           float64   `json:"ascentM"`
	DescentM          float64   `json:"descentM"`
	MinElevM          *float64  `json:"minElevM,omitempty"`
	MaxElevM          *float64  `json:"maxElevM,omitempty"`
	HorseID           *string   `json:"horseId,omitempty"`
}

func newRideResponse(ride *rides.Ride) RideResponse {
	return RideResponse{
		ID:                ride.ID,
		DateTimeCreated:   ride.DateTimeCreated,
		Title:             ride.Title,
		RideDate:          ride.RideDate.Format("2006-01-02"),
		DistanceKm:        ride.DistanceKm,
		TotalTimeS:        ride.TotalTimeS,
		MovingTimeS:       ride.MovingTimeS,
		AvgSpeedKmh:       ride.AvgSpeedKmh,
		AvgMovingSpeedKmh: ride.AvgMovingSpeedKmh,
		MaxSpeedKmh:       ride.MaxSpeedKmh,
		AscentM:           ride.AscentM,
		DescentM:          ride.DescentM,
		MinElevM:          ride.MinElevM,
		MaxElevM:          ride.MaxElevM,
		HorseID:           ride.HorseID,
	}
}

func newRideResponses(rideList []*rides.Ride) []RideResponse {
	responses := make([]RideResponse, 0, len(rideList))
	for _, ride := range rideList {
		responses = append(responses, newRideResponse(ride))
	}
	return responses
}

// AnalysisResponse is the JSON view of a recomputed ride analysis.
type AnalysisResponse struct {
	SpeedSeries      []rides.SpeedPoint   `json:"speedSeries"`
	ElevationProfile []rides.ProfilePoint `json:"elevationProfile"`
	Coordinates      []rides.Coordinate   `json:"coordinates"`
	TrackMissing     bool                 `json:"trackMissing"`
}

// HorseResponse is the JSON view of a horse. RideCount is set on listings only.
type HorseResponse struct {
	ID              string    `json:"id"`
	DateTimeCreated time.Time `json:"dateTimeCreated"`
	Name            string    `json:"name"`
	Notes           *string   `json:"notes,omitempty"`
	WalkTrotKmh     *float64  `json:"walkTrotKmh,omitempty"`
	TrotCanterKmh   *float64  `json:"trotCanterKmh,omitempty"`
	RideCount       *int64    `json:"rideCount,omitempty"`
}

func newHorseResponse(horse *horses.Horse) HorseResponse {
	return HorseResponse{
		ID:              horse.ID,
		DateTimeCreated: horse.DateTimeCreated,
		Name:            horse.Name,
		Notes:           horse.Notes,
		WalkTrotKmh:     horse.WalkTrotKmh,
		TrotCanterKmh:   horse.TrotCanterKmh,
	}
}

// HorseCreateRequest is the JSON body of POST /horses.
type HorseCreateRequest struct {
	Name  string  `json:"name" binding:"required"`
	Notes *string `json:"notes"`
}

// HorseUpdateRequest is the JSON body of PUT /horses/:id.
type HorseUpdateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Notes         *string  `json:"notes"`
	WalkTrotKmh   *float64 `json:"walkTrotKmh"`
	TrotCanterKmh *float64 `json:"trotCanterKmh"`
}

// PeriodRowResponse is one calendar bucket of a summary.
type PeriodRowResponse struct {
	Period string  `json:"period"`
	Rides  int     `json:"rides"`
	Km     float64 `json:"km"`
	AvgKmh float64 `json:"avgKmh"`
}

// SummaryResponse groups period aggregates of a ride set.
type SummaryResponse struct {
	Monthly []PeriodRowResponse `json:"monthly"`
	Weekly  []PeriodRowResponse `json:"weekly"`
	Yearly  []PeriodRowResponse `json:"yearly"`
}

func newSummaryResponse(summary *rides.Summary) SummaryResponse {
	return SummaryResponse{
		Monthly: newPeriodRowResponses(summary.Monthly),
		Weekly:  newPeriodRowResponses(summary.Weekly),
		Yearly:  newPeriodRowResponses(summary.Yearly),
	}
}

func newPeriodRowResponses(rows []rides.PeriodRow) []PeriodRowResponse {
	responses := make([]PeriodRowResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, PeriodRowResponse{
			Period: row.Period,
			Rides:  row.Rides,
			Km:     row.Km,
			AvgKmh: row.AvgKmh,
		})
	}
	return responses
}

// HorseStatsResponse is the lifetime figures block of a horse detail view.
type HorseStatsResponse struct {
	Rides       int     `json:"rides"`
	Km          float64 `json:"km"`
	AvgKmh      float64 `json:"avgKmh"`
	MaxSpeedKmh float64 `json:"maxSpeedKmh"`
}

// HorseDetailResponse is the full JSON view of GET /horses/:id.
type HorseDetailResponse struct {
	Horse       HorseResponse       `json:"horse"`
	Stats       HorseStatsResponse  `json:"stats"`
	Monthly     []PeriodRowResponse `json:"monthly"`
	Weekly      []PeriodRowResponse `json:"weekly"`
	Yearly      []PeriodRowResponse `json:"yearly"`
	TopLongest  []RideResponse      `json:"topLongest"`
	TopFastest  []RideResponse      `json:"topFastest"`
	TopClimbing []RideResponse      `json:"topClimbing"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
