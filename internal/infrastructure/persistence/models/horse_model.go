package models

import (
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
)

// HorseModel is the GORM database model for horses (infrastructure concern)
type HorseModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`
	Name            string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Notes           *string   `gorm:"type:text"`
	WalkTrotKmh     *float64
	TrotCanterKmh   *float64
}

// TableName specifies the table name for GORM
func (HorseModel) TableName() string {
	return "horses"
}

// ToDomain converts GORM model to domain entity
func (m *HorseModel) ToDomain() *horses.Horse {
	return &horses.Horse{
		ID:              m.ID,
		DateTimeCreated: m.DateTimeCreated,
		Name:            m.Name,
		Notes:           m.Notes,
		WalkTrotKmh:     m.WalkTrotKmh,
		TrotCanterKmh:   m.TrotCanterKmh,
	}
}

// FromDomain converts domain entity to GORM model
func (m *HorseModel) FromDomain(h *horses.Horse) {
	m.ID = h.ID
	m.DateTimeCreated = h.DateTimeCreated
	m.Name = h.Name
	m.Notes = h.Notes
	m.WalkTrotKmh = h.WalkTrotKmh
	m.TrotCanterKmh = h.TrotCanterKmh
}
