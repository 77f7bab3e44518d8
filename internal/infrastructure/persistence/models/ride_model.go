package models

import (
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
)

// RideModel is the GORM database model for rides (infrastructure concern)
type RideModel struct {
	ID                string    `gorm:"primaryKey;type:uuid"`
	DateTimeCreated   time.Time `gorm:"not null"`
	Title             string    `gorm:"not null;type:varchar(255)"`
	RideDate          time.Time `gorm:"not null;index"`
	DistanceKm        float64   `gorm:"not null"`
	TotalTimeS        int       `gorm:"not null"`
	MovingTimeS       int       `gorm:"not null"`
	AvgSpeedKmh       float64   `gorm:"not null"`
	AvgMovingSpeedKmh float64   `gorm:"not null"`
	MaxSpeedKmh       float64   `gorm:"not null"`
	AscentM           float64   `gorm:"not null"`
	DescentM          float64   `gorm:"not null"`
	MinElevM          *float64
	MaxElevM          *float64
	TrackRef          string  `gorm:"not null;type:varchar(1024)"`
	HorseID           *string `gorm:"type:uuid;index"`
}

// TableName specifies the table name for GORM
func (RideModel) TableName() string {
	return "rides"
}

// ToDomain converts GORM model to domain entity
func (m *RideModel) ToDomain() *rides.Ride {
	return &rides.Ride{
		ID:                m.ID,
		DateTimeCreated:   m.DateTimeCreated,
		Title:             m.Title,
		RideDate:          m.RideDate,
		DistanceKm:        m.DistanceKm,
		TotalTimeS:        m.TotalTimeS,
		MovingTimeS:       m.MovingTimeS,
		AvgSpeedKmh:       m.AvgSpeedKmh,
		AvgMovingSpeedKmh: m.AvgMovingSpeedKmh,
		MaxSpeedKmh:       m.MaxSpeedKmh,
		AscentM:           m.AscentM,
		DescentM:          m.DescentM,
		MinElevM:          m.MinElevM,
		MaxElevM:          m.MaxElevM,
		TrackRef:          m.TrackRef,
		HorseID:           m.HorseID,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RideModel) FromDomain(r *rides.Ride) {
	m.ID = r.ID
	m.DateTimeCreated = r.DateTimeCreated
	m.Title = r.Title
	m.RideDate = r.RideDate
	m.DistanceKm = r.DistanceKm
	m.TotalTimeS = r.TotalTimeS
	m.MovingTimeS = r.MovingTimeS
	m.AvgSpeedKmh = r.AvgSpeedKmh
	m.AvgMovingSpeedKmh = r.AvgMovingSpeedKmh
	m.MaxSpeedKmh = r.MaxSpeedKmh
	m.AscentM = r.AscentM
	m.DescentM = r.DescentM
	m.MinElevM = r.MinElevM
	m.MaxElevM = r.MaxElevM
	m.TrackRef = r.TrackRef
	m.HorseID = r.HorseID
}
