package pattern

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// ApplyPatternInput represents the input for an on-demand pattern apply.
type ApplyPatternInput struct {
	PatternID uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	// Month limits the re-scan to a single month when non-nil.
	Month *valueobject.MonthRef
}

// ApplyPatternOutput represents the output of an on-demand pattern apply.
type ApplyPatternOutput struct {
	RewrittenCount int
}

// ApplyPatternUseCase re-scans an owner's transactions with an existing
// pattern and rewrites the ones it matches.
type ApplyPatternUseCase struct {
	patternRepo     adapter.AdvancedPatternRepository
	transactionRepo adapter.TransactionRepository
	logger          *slog.Logger
}

// NewApplyPatternUseCase creates a new ApplyPatternUseCase instance.
func NewApplyPatternUseCase(
	patternRepo adapter.AdvancedPatternRepository,
	transactionRepo adapter.TransactionRepository,
	logger *slog.Logger,
) *ApplyPatternUseCase {
	return &ApplyPatternUseCase{
		patternRepo:     patternRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Execute performs the re-scan.
func (uc *ApplyPatternUseCase) Execute(ctx context.Context, input ApplyPatternInput) (*ApplyPatternOutput, error) {
	pattern, err := uc.patternRepo.FindByID(ctx, input.PatternID)
	if err != nil {
		return nil, err
	}
	if pattern.OwnerType != input.OwnerType || pattern.OwnerID != input.OwnerID {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodePatternNotFound,
			"pattern not found",
			domainerror.ErrPatternNotFound,
		)
	}

	var transactions []*entity.Transaction
	if input.Month != nil {
		transactions, err = uc.transactionRepo.FindByMonth(
			ctx, input.OwnerType, input.OwnerID, input.Month.Month, input.Month.Year)
	} else {
		transactions, err = uc.transactionRepo.FindByOwner(
			ctx, input.OwnerType, input.OwnerID, adapter.TransactionFilter{})
	}
	if err != nil {
		return nil, err
	}

	rewritten := make([]*entity.Transaction, 0)
	for _, tx := range transactions {
		if pattern.Matches(tx) {
			pattern.Apply(tx)
			rewritten = append(rewritten, tx)
		}
	}
	if len(rewritten) > 0 {
		if err := uc.transactionRepo.UpdateBatch(ctx, rewritten); err != nil {
			return nil, err
		}
	}

	uc.logger.InfoContext(ctx, "applied pattern on demand",
		"pattern_id", pattern.ID, "rewritten", len(rewritten))
	return &ApplyPatternOutput{RewrittenCount: len(rewritten)}, nil
}
