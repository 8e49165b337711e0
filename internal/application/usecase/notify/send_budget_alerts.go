// Package notify contains budget alerting use cases.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// BudgetChecker computes the progress report for one budget.
type BudgetChecker interface {
	CheckBudget(ctx context.Context, user *entity.User, budget *entity.CategoryBudget) (*valueobject.BudgetProgress, error)
}

// SendBudgetAlertsInput represents the input for the alert sweep.
type SendBudgetAlertsInput struct {
	Month int
	Year  int
}

// SendBudgetAlertsOutput represents the output of the alert sweep.
type SendBudgetAlertsOutput struct {
	Queued int
}

// SendBudgetAlertsUseCase sweeps every user's budgets for the month and
// queues an alert email for each budget tracking warning or worse. The
// dedup key keeps a user from being re-alerted about the same budget
// status within the alert window.
type SendBudgetAlertsUseCase struct {
	userRepo      adapter.UserRepository
	budgetRepo    adapter.CategoryBudgetRepository
	categoryRepo  adapter.CategoryRepository
	checker       BudgetChecker
	emailQueue    adapter.EmailQueueRepository
	alertInterval time.Duration
	logger        *slog.Logger
}

// NewSendBudgetAlertsUseCase creates a new SendBudgetAlertsUseCase instance.
func NewSendBudgetAlertsUseCase(
	userRepo adapter.UserRepository,
	budgetRepo adapter.CategoryBudgetRepository,
	categoryRepo adapter.CategoryRepository,
	checker BudgetChecker,
	emailQueue adapter.EmailQueueRepository,
	alertInterval time.Duration,
	logger *slog.Logger,
) *SendBudgetAlertsUseCase {
	return &SendBudgetAlertsUseCase{
		userRepo:      userRepo,
		budgetRepo:    budgetRepo,
		categoryRepo:  categoryRepo,
		checker:       checker,
		emailQueue:    emailQueue,
		alertInterval: alertInterval,
		logger:        logger,
	}
}

// Execute performs the sweep. A failure for one user is logged and the
// sweep continues.
func (uc *SendBudgetAlertsUseCase) Execute(ctx context.Context, input SendBudgetAlertsInput) (*SendBudgetAlertsOutput, error) {
	users, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &SendBudgetAlertsOutput{}
	for _, user := range users {
		queued, err := uc.sweepUser(ctx, user, input.Month, input.Year)
		if err != nil {
			uc.logger.ErrorContext(ctx, "budget alert sweep failed for user",
				"user_id", user.ID, "error", err)
			continue
		}
		out.Queued += queued
	}
	return out, nil
}

func (uc *SendBudgetAlertsUseCase) sweepUser(ctx context.Context, user *entity.User, month, year int) (int, error) {
	budgets, err := uc.budgetRepo.FindByMonth(ctx, entity.OwnerTypeUser, user.ID, month, year)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, budget := range budgets {
		progress, err := uc.checker.CheckBudget(ctx, user, budget)
		if err != nil {
			uc.logger.WarnContext(ctx, "budget progress check failed",
				"budget_id", budget.ID, "error", err)
			continue
		}
		if progress.Status == valueobject.BudgetOnTrack {
			continue
		}

		dedupKey := entity.BudgetAlertDedupKey(user.ID, budget.CategoryID, month, year, string(progress.Status))
		already, err := uc.emailQueue.ExistsByDedupKeySince(ctx, dedupKey, int(uc.alertInterval.Hours()))
		if err != nil {
			return queued, err
		}
		if already {
			continue
		}

		category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
		if err != nil {
			uc.logger.WarnContext(ctx, "alert skipped, category missing",
				"budget_id", budget.ID, "category_id", budget.CategoryID)
			continue
		}

		job := entity.NewEmailJob(
			entity.TemplateBudgetAlert,
			user.Email,
			user.Name,
			fmt.Sprintf("Budget alert: %s is %s", category.Name, progress.Status),
			map[string]interface{}{
				"category_name":  category.Name,
				"status":         string(progress.Status),
				"planned_amount": progress.PlannedAmount.StringFixed(2),
				"actual_spent":   progress.ActualSpent.StringFixed(2),
				"projected_end":  progress.ProjectedEndTotal.StringFixed(2),
				"month":          month,
				"year":           year,
			},
		)
		job.DedupKey = dedupKey
		if err := uc.emailQueue.Create(ctx, job); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}
