// Package pattern contains advanced pattern use cases.
package pattern

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// CreatePatternInput represents the input for pattern creation.
type CreatePatternInput struct {
	OwnerType          entity.OwnerType
	OwnerID            uuid.UUID
	DescriptionPattern string
	DatePattern        string
	WeekdayPattern     string
	AmountMin          *decimal.Decimal
	AmountMax          *decimal.Decimal
	TargetDescription  string
	TargetCategoryID   uuid.UUID
	ApplyRetroactively bool
}

// CreatePatternOutput represents the output of pattern creation.
type CreatePatternOutput struct {
	Pattern *entity.AdvancedPattern
	// RewrittenCount is the number of existing transactions rewritten
	// when the pattern applies retroactively.
	RewrittenCount int
}

// CreatePatternUseCase creates an advanced pattern and optionally
// re-scans existing transactions with it.
type CreatePatternUseCase struct {
	patternRepo     adapter.AdvancedPatternRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	logger          *slog.Logger
}

// NewCreatePatternUseCase creates a new CreatePatternUseCase instance.
func NewCreatePatternUseCase(
	patternRepo adapter.AdvancedPatternRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	logger *slog.Logger,
) *CreatePatternUseCase {
	return &CreatePatternUseCase{
		patternRepo:     patternRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		logger:          logger,
	}
}

// Execute performs the pattern creation.
func (uc *CreatePatternUseCase) Execute(ctx context.Context, input CreatePatternInput) (*CreatePatternOutput, error) {
	if input.DescriptionPattern == "" {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodePatternDescriptionRequired,
			"description pattern is required",
			domainerror.ErrPatternDescriptionRequired,
		)
	}
	if input.TargetDescription == "" && input.TargetCategoryID == uuid.Nil {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodePatternTargetRequired,
			"pattern must set a target description or category",
			domainerror.ErrPatternTargetRequired,
		)
	}
	for _, expr := range []string{input.DescriptionPattern, input.DatePattern, input.WeekdayPattern} {
		if expr == "" {
			continue
		}
		if _, err := regexp.Compile(expr); err != nil {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodeInvalidPatternRegex,
				"pattern is not a valid regular expression",
				domainerror.ErrInvalidPatternRegex,
			)
		}
	}

	if input.TargetCategoryID != uuid.Nil {
		category, err := uc.categoryRepo.FindByID(ctx, input.TargetCategoryID)
		if err != nil {
			return nil, err
		}
		if category.OwnerType != input.OwnerType || category.OwnerID != input.OwnerID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeNotAuthorizedCategory,
				"category does not belong to caller",
				domainerror.ErrNotAuthorizedToModifyCategory,
			)
		}
	}

	pattern := entity.NewAdvancedPattern(
		input.OwnerType,
		input.OwnerID,
		input.DescriptionPattern,
		input.TargetDescription,
		input.TargetCategoryID,
		input.ApplyRetroactively,
	)
	pattern.DatePattern = input.DatePattern
	pattern.WeekdayPattern = input.WeekdayPattern
	pattern.AmountMin = input.AmountMin
	pattern.AmountMax = input.AmountMax

	if err := uc.patternRepo.Create(ctx, pattern); err != nil {
		return nil, err
	}

	out := &CreatePatternOutput{Pattern: pattern}
	if input.ApplyRetroactively {
		rewritten, err := uc.applyRetroactively(ctx, pattern)
		if err != nil {
			return nil, err
		}
		out.RewrittenCount = rewritten
	}
	return out, nil
}

func (uc *CreatePatternUseCase) applyRetroactively(ctx context.Context, pattern *entity.AdvancedPattern) (int, error) {
	transactions, err := uc.transactionRepo.FindByOwner(ctx, pattern.OwnerType, pattern.OwnerID, adapter.TransactionFilter{})
	if err != nil {
		return 0, err
	}

	rewritten := make([]*entity.Transaction, 0)
	for _, tx := range transactions {
		if pattern.Matches(tx) {
			pattern.Apply(tx)
			rewritten = append(rewritten, tx)
		}
	}
	if len(rewritten) == 0 {
		return 0, nil
	}

	if err := uc.transactionRepo.UpdateBatch(ctx, rewritten); err != nil {
		return 0, err
	}
	uc.logger.InfoContext(ctx, "applied pattern retroactively",
		"pattern_id", pattern.ID, "rewritten", len(rewritten))
	return len(rewritten), nil
}
