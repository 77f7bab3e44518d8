package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence/models"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormHorseRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormHorseRepository creates a new GORM-based HorseRepository implementation
func NewGormHorseRepository(db *gorm.DB, logger logger.Logger) (horses.HorseRepository, error) {
	return &gormHorseRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormHorseRepository) Create(ctx context.Context, horse *horses.Horse) error {
	if err := horse.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.HorseModel{}
	model.FromDomain(horse)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return fmt.Errorf("horse named %q: %w", horse.Name, horses.ErrHorseExists)
		}
		return fmt.Errorf("failed to create horse: %w", err)
	}

	r.logger.Info("Created horse with id ", horse.ID)
	return nil
}

func (r *gormHorseRepository) List(ctx context.Context) ([]*horses.Horse, error) {
	var modelList []*models.HorseModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch horses: %w", err)
	}

	domainList := make([]*horses.Horse, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormHorseRepository) GetByID(ctx context.Context, horseID string) (*horses.Horse, error) {
	var model models.HorseModel
	if err := r.db.WithContext(ctx).Where("id = ?", horseID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("horse with ID %s: %w", horseID, horses.ErrHorseNotFound)
		}
		return nil, fmt.Errorf("failed to fetch horse: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormHorseRepository) GetByName(ctx context.Context, name string) (*horses.Horse, error) {
	var model models.HorseModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("horse named %q: %w", name, horses.ErrHorseNotFound)
		}
		return nil, fmt.Errorf("failed to fetch horse: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormHorseRepository) UpdateByID(ctx context.Context, horse *horses.Horse) error {
	if err := horse.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.HorseModel{}
	model.FromDomain(horse)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update horse: %w", err)
	}

	r.logger.Info("Updated horse with id ", horse.ID)
	return nil
}

func (r *gormHorseRepository) DeleteByID(ctx context.Context, horseID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", horseID).Delete(&models.HorseModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete horse: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("horse with ID %s: %w", horseID, horses.ErrHorseNotFound)
	}

	r.logger.Info("Deleted horse with id ", horseID)
	return nil
}

// isUniqueViolation matches the driver-specific unique constraint errors that
// GORM does not translate with the default config.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
