package rides

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Ride entity. Metric fields are stored pre-rounded in the units the API
// exposes (km, km/h, m, s). TrackRef points at the stored raw GPX: a local
// absolute path, an http(s) URL or an s3://bucket/key object reference.
type Ride struct {
	ID                string    `validate:"required,uuid4"`
	DateTimeCreated   time.Time `validate:"required"`
	Title             string    `validate:"required,min=1,max=255"`
	RideDate          time.Time `validate:"required"`
	DistanceKm        float64   `validate:"gte=0"`
	TotalTimeS        int       `validate:"gte=0"`
	MovingTimeS       int       `validate:"gte=0"`
	AvgSpeedKmh       float64   `validate:"gte=0"`
	AvgMovingSpeedKmh float64   `validate:"gte=0"`
	MaxSpeedKmh       float64   `validate:"gte=0"`
	AscentM           float64   `validate:"gte=0"`
	DescentM          float64   `validate:"gte=0"`
	MinElevM          *float64
	MaxElevM          *float64
	TrackRef          string  `validate:"required"`
	HorseID           *string `validate:"omitempty,uuid4"`
}

// Validate for validating Ride struct
func (r *Ride) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if r.MovingTimeS > r.TotalTimeS {
		return fmt.Errorf("validation failed: moving time exceeds total time")
	}

	return nil
}
