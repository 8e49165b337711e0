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

// categoryBudgetRepository implements the adapter.CategoryBudgetRepository interface.
type categoryBudgetRepository struct {
	db *gorm.DB
}

// NewCategoryBudgetRepository creates a new category budget repository instance.
func NewCategoryBudgetRepository(db *gorm.DB) adapter.CategoryBudgetRepository {
	return &categoryBudgetRepository{db: db}
}

// Create creates a new category budget in the database.
func (r *categoryBudgetRepository) Create(ctx context.Context, budget *entity.CategoryBudget) error {
	budgetModel := model.CategoryBudgetFromEntity(budget)
	return r.db.WithContext(ctx).Create(budgetModel).Error
}

// FindByID retrieves a budget by its ID.
func (r *categoryBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryBudget, error) {
	var budgetModel model.CategoryBudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByMonth retrieves all budgets of an owner for a month.
func (r *categoryBudgetRepository) FindByMonth(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) ([]*entity.CategoryBudget, error) {
	var budgetModels []model.CategoryBudgetModel
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND month = ? AND year = ?",
			string(ownerType), ownerID, month, year).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.CategoryBudget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// FindByCategoryAndMonth retrieves the budget for a category and month.
func (r *categoryBudgetRepository) FindByCategoryAndMonth(ctx context.Context, categoryID uuid.UUID, month, year int) (*entity.CategoryBudget, error) {
	var budgetModel model.CategoryBudgetModel
	result := r.db.WithContext(ctx).
		Where("category_id = ? AND month = ? AND year = ?", categoryID, month, year).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Update updates an existing budget in the database.
func (r *categoryBudgetRepository) Update(ctx context.Context, budget *entity.CategoryBudget) error {
	budgetModel := model.CategoryBudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Model(&model.CategoryBudgetModel{}).
		Where("id = ?", budget.ID).
		Select("type", "planned_amount", "is_consolidated", "consolidated_at", "updated_at").
		Updates(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// Delete soft-deletes a budget.
func (r *categoryBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CategoryBudgetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}
