package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/google/uuid"
)

// horseService implements the HorseService interface for managing horses
type horseService struct {
	horseRepo horses.HorseRepository
	rideRepo  rides.RideRepository
	logger    logger.Logger
}

// NewHorseService creates a new instance of horseService
func NewHorseService(horseRepo horses.HorseRepository, rideRepo rides.RideRepository, logger logger.Logger) (horses.HorseService, error) {
	return &horseService{
		horseRepo: horseRepo,
		rideRepo:  rideRepo,
		logger:    logger,
	}, nil
}

// List retrieves all horses ordered by name, each with its ride count.
func (s *horseService) List(ctx context.Context) ([]*horses.HorseSummary, error) {
	horseList, err := s.horseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list horses: %w", err)
	}

	summaries := make([]*horses.HorseSummary, 0, len(horseList))
	for _, horse := range horseList {
		count, err := s.rideRepo.CountByHorse(ctx, horse.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count rides of horse %s: %w", horse.ID, err)
		}
		summaries = append(summaries, &horses.HorseSummary{Horse: horse, RideCount: count})
	}
	return summaries, nil
}

// Create registers a new horse. It returns ErrHorseExists when the name is taken.
func (s *horseService) Create(ctx context.Context, name string, notes *string) (*horses.Horse, error) {
	horse := &horses.Horse{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now().UTC(),
		Name:            name,
		Notes:           notes,
	}
	if err := horse.Validate(); err != nil {
		return nil, err
	}

	if err := s.horseRepo.Create(ctx, horse); err != nil {
		return nil, fmt.Errorf("failed to create horse: %w", err)
	}

	s.logger.Info("Created horse ", horse.ID, " named ", name)
	return horse, nil
}

// GetByID retrieves a horse by ID.
func (s *horseService) GetByID(ctx context.Context, horseID string) (*horses.Horse, error) {
	horse, err := s.horseRepo.GetByID(ctx, horseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch horse: %w", err)
	}
	return horse, nil
}

// UpdateByID replaces the mutable fields of a horse.
func (s *horseService) UpdateByID(ctx context.Context, horseID string, update horses.HorseUpdate) (*horses.Horse, error) {
	horse, err := s.horseRepo.GetByID(ctx, horseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch horse: %w", err)
	}

	horse.Name = update.Name
	horse.Notes = update.Notes
	horse.WalkTrotKmh = update.WalkTrotKmh
	horse.TrotCanterKmh = update.TrotCanterKmh
	if err := horse.Validate(); err != nil {
		return nil, err
	}

	if err := s.horseRepo.UpdateByID(ctx, horse); err != nil {
		return nil, fmt.Errorf("failed to update horse: %w", err)
	}
	return horse, nil
}

// DeleteByID removes a horse. Its rides are kept and detached first.
func (s *horseService) DeleteByID(ctx context.Context, horseID string) error {
	if _, err := s.horseRepo.GetByID(ctx, horseID); err != nil {
		return fmt.Errorf("failed to fetch horse: %w", err)
	}

	if err := s.rideRepo.DetachHorse(ctx, horseID); err != nil {
		return fmt.Errorf("failed to detach rides of horse %s: %w", horseID, err)
	}

	if err := s.horseRepo.DeleteByID(ctx, horseID); err != nil {
		return fmt.Errorf("failed to delete horse: %w", err)
	}

	s.logger.Info("Deleted horse ", horseID)
	return nil
}
