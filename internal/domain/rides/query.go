package rides

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RideQuery filters and orders ride listings.
type RideQuery struct {
	HorseID   string    `validate:"omitempty,uuid4"`
	From      time.Time // include rides on or after this date
	To        time.Time // include rides on or before this date
	Limit     int       `validate:"omitempty,min=1,max=1000"`
	Offset    int       `validate:"omitempty,min=0"`
	SortBy    string    `validate:"omitempty,oneof=ride_date distance_km max_speed_kmh ascent_m date_time_created"`
	SortOrder string    `validate:"omitempty,oneof=asc desc"`
}

// NewRideQuery creates a RideQuery with the default ordering: newest ride first.
func NewRideQuery() *RideQuery {
	return &RideQuery{
		SortBy:    "ride_date",
		SortOrder: "desc",
	}
}

// Validate for validating RideQuery struct
func (q *RideQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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

	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return fmt.Errorf("validation failed: query range end precedes start")
	}

	return nil
}
