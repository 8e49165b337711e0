package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// advancedPatternRepository implements the adapter.AdvancedPatternRepository interface.
type advancedPatternRepository struct {
	db *gorm.DB
}

// NewAdvancedPatternRepository creates a new pattern repository instance.
func NewAdvancedPatternRepository(db *gorm.DB) adapter.AdvancedPatternRepository {
	return &advancedPatternRepository{db: db}
}

// Create creates a new pattern in the database.
func (r *advancedPatternRepository) Create(ctx context.Context, pattern *entity.AdvancedPattern) error {
	patternModel := model.AdvancedPatternFromEntity(pattern)
	return r.db.WithContext(ctx).Create(patternModel).Error
}

// FindByID retrieves a pattern by its ID.
func (r *advancedPatternRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdvancedPattern, error) {
	var patternModel model.AdvancedPatternModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&patternModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPatternNotFound
		}
		return nil, result.Error
	}
	return patternModel.ToEntity(), nil
}

// FindActiveByOwner retrieves all active patterns for an owner, oldest first.
// Ingestion applies the first pattern that matches, so order is stable.
func (r *advancedPatternRepository) FindActiveByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.AdvancedPattern, error) {
	var patternModels []model.AdvancedPatternModel
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND is_active = ?", string(ownerType), ownerID, true).
		Order("created_at ASC").
		Find(&patternModels)
	if result.Error != nil {
		return nil, result.Error
	}

	patterns := make([]*entity.AdvancedPattern, len(patternModels))
	for i, pm := range patternModels {
		patterns[i] = pm.ToEntity()
	}
	return patterns, nil
}

// Update updates an existing pattern in the database.
func (r *advancedPatternRepository) Update(ctx context.Context, pattern *entity.AdvancedPattern) error {
	patternModel := model.AdvancedPatternFromEntity(pattern)
	result := r.db.WithContext(ctx).Model(&model.AdvancedPatternModel{}).
		Where("id = ?", pattern.ID).
		Select("description_pattern", "date_pattern", "weekday_pattern",
			"amount_min", "amount_max", "target_description", "target_category_id",
			"apply_retroactively", "is_active", "updated_at").
		Updates(patternModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPatternNotFound
	}
	return nil
}

// Delete soft-deletes a pattern.
func (r *advancedPatternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AdvancedPatternModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPatternNotFound
	}
	return nil
}
