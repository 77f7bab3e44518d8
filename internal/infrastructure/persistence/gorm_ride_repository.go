package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence/models"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRideRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRideRepository creates a new GORM-based RideRepository implementation
func NewGormRideRepository(db *gorm.DB, logger logger.Logger) (rides.RideRepository, error) {
	return &gormRideRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRideRepository) Create(ctx context.Context, ride *rides.Ride) error {
	// Validate domain entity (business rules)
	if err := ride.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.RideModel{}
	model.FromDomain(ride)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	r.logger.Info("Created ride with id ", ride.ID)
	return nil
}

func (r *gormRideRepository) List(ctx context.Context, query *rides.RideQuery) ([]*rides.Ride, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.RideModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RideModel{})

	// Apply filters
	if query.HorseID != "" {
		dbQuery = dbQuery.Where("horse_id = ?", query.HorseID)
	}
	if !query.From.IsZero() {
		dbQuery = dbQuery.Where("ride_date >= ?", query.From)
	}
	if !query.To.IsZero() {
		dbQuery = dbQuery.Where("ride_date <= ?", query.To)
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rides: %w", err)
	}

	// Convert to domain models
	domainList := make([]*rides.Ride, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormRideRepository) GetByID(ctx context.Context, rideID string) (*rides.Ride, error) {
	var model models.RideModel
	if err := r.db.WithContext(ctx).Where("id = ?", rideID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ride with ID %s: %w", rideID, rides.ErrRideNotFound)
		}
		return nil, fmt.Errorf("failed to fetch ride: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRideRepository) UpdateByID(ctx context.Context, ride *rides.Ride) error {
	if err := ride.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RideModel{}
	model.FromDomain(ride)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update ride: %w", err)
	}

	r.logger.Info("Updated ride with id ", ride.ID)
	return nil
}

func (r *gormRideRepository) DeleteByID(ctx context.Context, rideID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", rideID).Delete(&models.RideModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete ride: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ride with ID %s: %w", rideID, rides.ErrRideNotFound)
	}

	r.logger.Info("Deleted ride with id ", rideID)
	return nil
}

func (r *gormRideRepository) CountByHorse(ctx context.Context, horseID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RideModel{}).Where("horse_id = ?", horseID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rides: %w", err)
	}
	return count, nil
}

func (r *gormRideRepository) DetachHorse(ctx context.Context, horseID string) error {
	if err := r.db.WithContext(ctx).Model(&models.RideModel{}).Where("horse_id = ?", horseID).Update("horse_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach rides from horse %s: %w", horseID, err)
	}
	return nil
}
