package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for the category listing.
type ListCategoriesInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	// Type filters by category type when set.
	Type *entity.CategoryType
}

// ListCategoriesOutput represents the output of the category listing.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase lists an owner's categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute lists the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if input.Type != nil {
		categories, err := uc.categoryRepo.FindByOwnerAndType(ctx, input.OwnerType, input.OwnerID, *input.Type)
		if err != nil {
			return nil, err
		}
		return &ListCategoriesOutput{Categories: categories}, nil
	}

	categories, err := uc.categoryRepo.FindByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListCategoriesOutput{Categories: categories}, nil
}
