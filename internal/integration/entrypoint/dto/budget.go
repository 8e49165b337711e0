package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// UpsertBudgetRequest represents the request body for creating or
// updating the single budget of a (category, month, year).
type UpsertBudgetRequest struct {
	CategoryID    string `json:"category_id" binding:"required,uuid"`
	Month         int    `json:"month" binding:"required,min=1,max=12"`
	Year          int    `json:"year" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=fixed calculated maior"`
	PlannedAmount string `json:"planned_amount,omitempty"`
}

// CopyBudgetsRequest represents the request body for copying a month's
// budgets to another month.
type CopyBudgetsRequest struct {
	SourceMonth int `json:"source_month" binding:"required,min=1,max=12"`
	SourceYear  int `json:"source_year" binding:"required"`
	TargetMonth int `json:"target_month" binding:"required,min=1,max=12"`
	TargetYear  int `json:"target_year" binding:"required"`
}

// BudgetResponse represents a single category budget in API responses.
type BudgetResponse struct {
	ID             string     `json:"id"`
	CategoryID     string     `json:"category_id"`
	Month          int        `json:"month"`
	Year           int        `json:"year"`
	Type           string     `json:"type"`
	PlannedAmount  string     `json:"planned_amount"`
	IsConsolidated bool       `json:"is_consolidated"`
	ConsolidatedAt *time.Time `json:"consolidated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// CopyBudgetsResponse represents the result of a budget copy.
type CopyBudgetsResponse struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// BudgetProgressResponse represents the run-rate progress report for a
// budget. Monetary values are decimal strings.
type BudgetProgressResponse struct {
	CategoryID        string `json:"category_id"`
	BudgetType        string `json:"budget_type"`
	PlannedAmount     string `json:"planned_amount"`
	ActualSpent       string `json:"actual_spent"`
	DaysInMonth       int    `json:"days_in_month"`
	CurrentDay        int    `json:"current_day"`
	ProgressPercent   string `json:"progress_percent"`
	ExpectedAtDay     string `json:"expected_at_day"`
	Variance          string `json:"variance"`
	ProjectedEndTotal string `json:"projected_end_total"`
	ProjectedVariance string `json:"projected_variance"`
	Status            string `json:"status"`
}

// ToBudgetResponse converts a domain CategoryBudget entity to a DTO.
func ToBudgetResponse(budget *entity.CategoryBudget) BudgetResponse {
	return BudgetResponse{
		ID:             budget.ID.String(),
		CategoryID:     budget.CategoryID.String(),
		Month:          budget.Month,
		Year:           budget.Year,
		Type:           string(budget.Type),
		PlannedAmount:  budget.PlannedAmount.StringFixed(2),
		IsConsolidated: budget.IsConsolidated,
		ConsolidatedAt: budget.ConsolidatedAt,
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}
}

// ToBudgetListResponse converts budgets to BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.CategoryBudget) BudgetListResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: responses}
}

// ToBudgetProgressResponse converts a progress report to its DTO.
func ToBudgetProgressResponse(progress valueobject.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		CategoryID:        progress.CategoryID,
		BudgetType:        string(progress.BudgetType),
		PlannedAmount:     progress.PlannedAmount.StringFixed(2),
		ActualSpent:       progress.ActualSpent.StringFixed(2),
		DaysInMonth:       progress.DaysInMonth,
		CurrentDay:        progress.CurrentDay,
		ProgressPercent:   progress.ProgressPercent.StringFixed(4),
		ExpectedAtDay:     progress.ExpectedAtDay.StringFixed(2),
		Variance:          progress.Variance.StringFixed(2),
		ProjectedEndTotal: progress.ProjectedEndTotal.StringFixed(2),
		ProjectedVariance: progress.ProjectedVariance.StringFixed(2),
		Status:            string(progress.Status),
	}
}
