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

// plannedEntryRepository implements the adapter.PlannedEntryRepository interface.
type plannedEntryRepository struct {
	db *gorm.DB
}

// NewPlannedEntryRepository creates a new planned entry repository instance.
func NewPlannedEntryRepository(db *gorm.DB) adapter.PlannedEntryRepository {
	return &plannedEntryRepository{db: db}
}

// Create creates a new planned entry in the database.
func (r *plannedEntryRepository) Create(ctx context.Context, entry *entity.PlannedEntry) error {
	entryModel := model.PlannedEntryFromEntity(entry)
	return r.db.WithContext(ctx).Create(entryModel).Error
}

// FindByID retrieves a planned entry by its ID.
func (r *plannedEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PlannedEntry, error) {
	var entryModel model.PlannedEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlannedEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindActiveByOwner retrieves all active planned entries for an owner,
// month instances included.
func (r *plannedEntryRepository) FindActiveByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.PlannedEntry, error) {
	var entryModels []model.PlannedEntryModel
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND is_active = ?", string(ownerType), ownerID, true).
		Order("created_at ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntryEntities(entryModels), nil
}

// FindRecurrentTemplates retrieves active recurring templates for an owner.
func (r *plannedEntryRepository) FindRecurrentTemplates(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.PlannedEntry, error) {
	var entryModels []model.PlannedEntryModel
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND is_active = ? AND is_recurrent = ? AND parent_entry_id IS NULL",
			string(ownerType), ownerID, true, true).
		Order("created_at ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntryEntities(entryModels), nil
}

// FindInstanceOfTemplate retrieves the month instance generated from a
// recurring template. The instance is tied to its month through the
// status record created alongside it.
func (r *plannedEntryRepository) FindInstanceOfTemplate(ctx context.Context, parentEntryID uuid.UUID, month, year int) (*entity.PlannedEntry, error) {
	var entryModel model.PlannedEntryModel
	result := r.db.WithContext(ctx).
		Where("parent_entry_id = ?", parentEntryID).
		Where("id IN (?)", r.db.Model(&model.PlannedEntryStatusModel{}).
			Select("entry_id").
			Where("month = ? AND year = ?", month, year)).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlannedEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByCategoryAndMonth retrieves an owner's active entries for a category
// that apply to the given month. Month instances of other months are
// filtered out through their status records.
func (r *plannedEntryRepository) FindByCategoryAndMonth(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, categoryID uuid.UUID, month, year int) ([]*entity.PlannedEntry, error) {
	var entryModels []model.PlannedEntryModel
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND category_id = ? AND is_active = ?",
			string(ownerType), ownerID, categoryID, true).
		Where("parent_entry_id IS NULL OR id IN (?)", r.db.Model(&model.PlannedEntryStatusModel{}).
			Select("entry_id").
			Where("month = ? AND year = ?", month, year)).
		Order("created_at ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntryEntities(entryModels), nil
}

// Update updates an existing planned entry in the database.
func (r *plannedEntryRepository) Update(ctx context.Context, entry *entity.PlannedEntry) error {
	entryModel := model.PlannedEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Model(&model.PlannedEntryModel{}).
		Where("id = ?", entry.ID).
		Select("category_id", "description", "description_pattern",
			"amount_min", "amount_max", "expected_day_start", "expected_day_end",
			"is_recurrent", "is_active", "updated_at").
		Updates(entryModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPlannedEntryNotFound
	}
	return nil
}

// Deactivate marks a planned entry inactive. Status history is kept.
func (r *plannedEntryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.PlannedEntryModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPlannedEntryNotFound
	}
	return nil
}

func toEntryEntities(entryModels []model.PlannedEntryModel) []*entity.PlannedEntry {
	entries := make([]*entity.PlannedEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries
}
