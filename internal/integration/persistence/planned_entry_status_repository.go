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

// plannedEntryStatusRepository implements the adapter.PlannedEntryStatusRepository interface.
type plannedEntryStatusRepository struct {
	db *gorm.DB
}

// NewPlannedEntryStatusRepository creates a new status repository instance.
func NewPlannedEntryStatusRepository(db *gorm.DB) adapter.PlannedEntryStatusRepository {
	return &plannedEntryStatusRepository{db: db}
}

// Create inserts a status record for an entry and month.
func (r *plannedEntryStatusRepository) Create(ctx context.Context, status *entity.PlannedEntryStatus) error {
	statusModel := model.PlannedEntryStatusFromEntity(status)
	return r.db.WithContext(ctx).Create(statusModel).Error
}

// FindByEntryAndMonth retrieves the status record for an entry and month.
func (r *plannedEntryStatusRepository) FindByEntryAndMonth(ctx context.Context, entryID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error) {
	var statusModel model.PlannedEntryStatusModel
	result := r.db.WithContext(ctx).
		Where("entry_id = ? AND month = ? AND year = ?", entryID, month, year).
		First(&statusModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryStatusNotFound
		}
		return nil, result.Error
	}
	return statusModel.ToEntity(), nil
}

// FindByMonth retrieves all status records of the given entries for a month.
func (r *plannedEntryStatusRepository) FindByMonth(ctx context.Context, entryIDs []uuid.UUID, month, year int) ([]*entity.PlannedEntryStatus, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	var statusModels []model.PlannedEntryStatusModel
	result := r.db.WithContext(ctx).
		Where("entry_id IN ? AND month = ? AND year = ?", entryIDs, month, year).
		Find(&statusModels)
	if result.Error != nil {
		return nil, result.Error
	}

	statuses := make([]*entity.PlannedEntryStatus, len(statusModels))
	for i, sm := range statusModels {
		statuses[i] = sm.ToEntity()
	}
	return statuses, nil
}

// FindByMatchedTransaction retrieves the status holding a match to the
// transaction in the given month, if one exists.
func (r *plannedEntryStatusRepository) FindByMatchedTransaction(ctx context.Context, transactionID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error) {
	var statusModel model.PlannedEntryStatusModel
	result := r.db.WithContext(ctx).
		Where("matched_transaction_id = ? AND month = ? AND year = ?", transactionID, month, year).
		First(&statusModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryStatusNotFound
		}
		return nil, result.Error
	}
	return statusModel.ToEntity(), nil
}

// UpdateWithGuard persists a status mutation only if the stored record is
// still in expectedStatus. The guard turns the update into a compare and
// swap, so two writers racing on the same status cannot both win.
func (r *plannedEntryStatusRepository) UpdateWithGuard(ctx context.Context, status *entity.PlannedEntryStatus, expectedStatus entity.EntryStatus) error {
	statusModel := model.PlannedEntryStatusFromEntity(status)
	result := r.db.WithContext(ctx).Model(&model.PlannedEntryStatusModel{}).
		Where("id = ? AND status = ?", status.ID, string(expectedStatus)).
		Select("status", "matched_transaction_id", "matched_amount", "matched_at",
			"dismissed_at", "dismissal_reason", "updated_at").
		Updates(statusModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStaleStatus
	}
	return nil
}
