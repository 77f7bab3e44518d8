package horses

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Horse entity. WalkTrotKmh and TrotCanterKmh are per-horse gait speed
// thresholds separating walk from trot and trot from canter.
type Horse struct {
	ID              string    `validate:"required,uuid4"`
	DateTimeCreated time.Time `validate:"required"`
	Name            string    `validate:"required,min=1,max=255"`
	Notes           *string   `validate:"omitempty,max=4000"`
	WalkTrotKmh     *float64  `validate:"omitempty,gt=0"`
	TrotCanterKmh   *float64  `validate:"omitempty,gt=0"`
}

// Validate for validating Horse struct
func (h *Horse) Validate() error {
	validate := validator.New()

	err := validate.Struct(h)
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

	if h.WalkTrotKmh != nil && h.TrotCanterKmh != nil && *h.WalkTrotKmh >= *h.TrotCanterKmh {
		return fmt.Errorf("validation failed: walk/trot threshold must be below trot/canter threshold")
	}

	return nil
}

// HorseSummary pairs a horse with the number of rides assigned to it.
type HorseSummary struct {
	Horse     *Horse
	RideCount int64
}
