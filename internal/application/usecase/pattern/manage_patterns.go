package pattern

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ListPatternsInput represents the input for the pattern listing.
type ListPatternsInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// ListPatternsOutput represents the output of the pattern listing.
type ListPatternsOutput struct {
	Patterns []*entity.AdvancedPattern
}

// ListPatternsUseCase lists an owner's active patterns.
type ListPatternsUseCase struct {
	patternRepo adapter.AdvancedPatternRepository
}

// NewListPatternsUseCase creates a new ListPatternsUseCase instance.
func NewListPatternsUseCase(patternRepo adapter.AdvancedPatternRepository) *ListPatternsUseCase {
	return &ListPatternsUseCase{patternRepo: patternRepo}
}

// Execute lists the patterns.
func (uc *ListPatternsUseCase) Execute(ctx context.Context, input ListPatternsInput) (*ListPatternsOutput, error) {
	patterns, err := uc.patternRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListPatternsOutput{Patterns: patterns}, nil
}

// UpdatePatternInput represents the input for pattern update. Nil
// pointer fields are left unchanged.
type UpdatePatternInput struct {
	PatternID uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID

	DescriptionPattern *string
	DatePattern        *string
	WeekdayPattern     *string
	AmountMin          *decimal.Decimal
	AmountMax          *decimal.Decimal
	TargetDescription  *string
	TargetCategoryID   *uuid.UUID
	IsActive           *bool
}

// UpdatePatternOutput represents the output of pattern update.
type UpdatePatternOutput struct {
	Pattern *entity.AdvancedPattern
}

// UpdatePatternUseCase updates an existing pattern.
type UpdatePatternUseCase struct {
	patternRepo adapter.AdvancedPatternRepository
}

// NewUpdatePatternUseCase creates a new UpdatePatternUseCase instance.
func NewUpdatePatternUseCase(patternRepo adapter.AdvancedPatternRepository) *UpdatePatternUseCase {
	return &UpdatePatternUseCase{patternRepo: patternRepo}
}

// Execute performs the pattern update.
func (uc *UpdatePatternUseCase) Execute(ctx context.Context, input UpdatePatternInput) (*UpdatePatternOutput, error) {
	pattern, err := uc.findOwned(ctx, input.PatternID, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}

	for _, expr := range []*string{input.DescriptionPattern, input.DatePattern, input.WeekdayPattern} {
		if expr == nil || *expr == "" {
			continue
		}
		if _, err := regexp.Compile(*expr); err != nil {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodeInvalidPatternRegex,
				"pattern is not a valid regular expression",
				domainerror.ErrInvalidPatternRegex,
			)
		}
	}

	if input.DescriptionPattern != nil {
		if *input.DescriptionPattern == "" {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodePatternDescriptionRequired,
				"description pattern is required",
				domainerror.ErrPatternDescriptionRequired,
			)
		}
		pattern.DescriptionPattern = *input.DescriptionPattern
	}
	if input.DatePattern != nil {
		pattern.DatePattern = *input.DatePattern
	}
	if input.WeekdayPattern != nil {
		pattern.WeekdayPattern = *input.WeekdayPattern
	}
	if input.AmountMin != nil {
		pattern.AmountMin = input.AmountMin
	}
	if input.AmountMax != nil {
		pattern.AmountMax = input.AmountMax
	}
	if input.TargetDescription != nil {
		pattern.TargetDescription = *input.TargetDescription
	}
	if input.TargetCategoryID != nil {
		pattern.TargetCategoryID = *input.TargetCategoryID
	}
	if input.IsActive != nil {
		pattern.IsActive = *input.IsActive
	}
	pattern.UpdatedAt = time.Now().UTC()

	if err := uc.patternRepo.Update(ctx, pattern); err != nil {
		return nil, err
	}
	return &UpdatePatternOutput{Pattern: pattern}, nil
}

func (uc *UpdatePatternUseCase) findOwned(ctx context.Context, id uuid.UUID, ownerType entity.OwnerType, ownerID uuid.UUID) (*entity.AdvancedPattern, error) {
	pattern, err := uc.patternRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pattern.OwnerType != ownerType || pattern.OwnerID != ownerID {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodePatternNotFound,
			"pattern not found",
			domainerror.ErrPatternNotFound,
		)
	}
	return pattern, nil
}

// DeletePatternInput represents the input for pattern deletion.
type DeletePatternInput struct {
	PatternID uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// DeletePatternUseCase soft-deletes a pattern.
type DeletePatternUseCase struct {
	patternRepo adapter.AdvancedPatternRepository
}

// NewDeletePatternUseCase creates a new DeletePatternUseCase instance.
func NewDeletePatternUseCase(patternRepo adapter.AdvancedPatternRepository) *DeletePatternUseCase {
	return &DeletePatternUseCase{patternRepo: patternRepo}
}

// Execute performs the deletion.
func (uc *DeletePatternUseCase) Execute(ctx context.Context, input DeletePatternInput) error {
	pattern, err := uc.patternRepo.FindByID(ctx, input.PatternID)
	if err != nil {
		return err
	}
	if pattern.OwnerType != input.OwnerType || pattern.OwnerID != input.OwnerID {
		return domainerror.NewPatternError(
			domainerror.ErrCodePatternNotFound,
			"pattern not found",
			domainerror.ErrPatternNotFound,
		)
	}
	return uc.patternRepo.Delete(ctx, pattern.ID)
}
