package horses

import (
	"context"
	"errors"
)

// ErrHorseNotFound reports a lookup for a horse that does not exist.
var ErrHorseNotFound = errors.New("horse not found")

// ErrHorseExists reports an attempt to create a horse with a name already taken.
var ErrHorseExists = errors.New("horse already exists")

// HorseUpdate carries the mutable horse fields for UpdateByID.
type HorseUpdate struct {
	Name          string
	Notes         *string
	WalkTrotKmh   *float64
	TrotCanterKmh *float64
}

// HorseService defines methods for managing horses.
type HorseService interface {
	// List retrieves all horses ordered by name, each with its ride count.
	List(ctx context.Context) ([]*HorseSummary, error)

	// Create registers a new horse. It returns ErrHorseExists when the name is taken.
	Create(ctx context.Context, name string, notes *string) (*Horse, error)

	// GetByID retrieves a horse by ID.
	GetByID(ctx context.Context, horseID string) (*Horse, error)

	// UpdateByID replaces the mutable fields of a horse.
	UpdateByID(ctx context.Context, horseID string, update HorseUpdate) (*Horse, error)

	// DeleteByID removes a horse. Rides assigned to it are detached, not deleted.
	DeleteByID(ctx context.Context, horseID string) error
}

// HorseRepository defines the interface for Horse-related persistence operations
type HorseRepository interface {
	// Create adds a new Horse to the database
	Create(ctx context.Context, horse *Horse) error
	// List lists Horses in the database ordered by name
	List(ctx context.Context) ([]*Horse, error)
	// GetByID retrieves a Horse from the database by ID
	GetByID(ctx context.Context, horseID string) (*Horse, error)
	// GetByName retrieves a Horse from the database by its unique name
	GetByName(ctx context.Context, name string) (*Horse, error)
	// UpdateByID updates a Horse in the database by ID
	UpdateByID(ctx context.Context, horse *Horse) error
	// DeleteByID deletes a Horse in the database by ID
	DeleteByID(ctx context.Context, horseID string) error
}
