package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryBudgetRepository defines the interface for category budget persistence operations.
type CategoryBudgetRepository interface {
	// Create creates a new category budget. Fails if one already exists
	// for (category, month, year).
	Create(ctx context.Context, budget *entity.CategoryBudget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryBudget, error)

	// FindByMonth retrieves all budgets of an owner for a month.
	FindByMonth(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) ([]*entity.CategoryBudget, error)

	// FindByCategoryAndMonth retrieves the budget for a category and month, if any.
	FindByCategoryAndMonth(ctx context.Context, categoryID uuid.UUID, month, year int) (*entity.CategoryBudget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.CategoryBudget) error

	// Delete soft-deletes a budget.
	Delete(ctx context.Context, id uuid.UUID) error
}
