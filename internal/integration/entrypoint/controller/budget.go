package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles category budget endpoints.
type BudgetController struct {
	upsertUseCase      *budget.UpsertBudgetUseCase
	listUseCase        *budget.ListBudgetsUseCase
	progressUseCase    *budget.GetBudgetProgressUseCase
	consolidateUseCase *budget.ConsolidateBudgetUseCase
	copyUseCase        *budget.CopyBudgetsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	upsertUseCase *budget.UpsertBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	progressUseCase *budget.GetBudgetProgressUseCase,
	consolidateUseCase *budget.ConsolidateBudgetUseCase,
	copyUseCase *budget.CopyBudgetsUseCase,
) *BudgetController {
	return &BudgetController{
		upsertUseCase:      upsertUseCase,
		listUseCase:        listUseCase,
		progressUseCase:    progressUseCase,
		consolidateUseCase: consolidateUseCase,
		copyUseCase:        copyUseCase,
	}
}

// Upsert handles PUT /budgets requests.
func (c *BudgetController) Upsert(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.UpsertBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	// planned_amount is required for fixed budgets only; calculated and
	// maior budgets derive it, so an absent value means zero.
	plannedAmount := decimal.Zero
	if req.PlannedAmount != "" {
		plannedAmount, err = decimal.NewFromString(req.PlannedAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid planned_amount format",
				Code:  string(domainerror.ErrCodeInvalidBudgetAmount),
			})
			return
		}
	}

	input := budget.UpsertBudgetInput{
		OwnerType:     entity.OwnerTypeUser,
		OwnerID:       userID,
		CategoryID:    categoryID,
		Month:         req.Month,
		Year:          req.Year,
		Type:          entity.BudgetType(req.Type),
		PlannedAmount: plannedAmount,
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
		})
		return
	}

	input := budget.ListBudgetsInput{
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Progress handles GET /budgets/:id/progress requests.
func (c *BudgetController) Progress(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	input := budget.GetBudgetProgressInput{
		BudgetID:  budgetID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
	}

	output, err := c.progressUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetProgressResponse(output.Progress))
}

// Consolidate handles POST /budgets/:id/consolidate requests.
func (c *BudgetController) Consolidate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	input := budget.ConsolidateBudgetInput{
		BudgetID:  budgetID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
	}

	output, err := c.consolidateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Copy handles POST /budgets/copy requests.
func (c *BudgetController) Copy(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CopyBudgetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := budget.CopyBudgetsInput{
		OwnerType:   entity.OwnerTypeUser,
		OwnerID:     userID,
		SourceMonth: req.SourceMonth,
		SourceYear:  req.SourceYear,
		TargetMonth: req.TargetMonth,
		TargetYear:  req.TargetYear,
	}

	output, err := c.copyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CopyBudgetsResponse{
		Copied:  output.Copied,
		Skipped: output.Skipped,
	})
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		statusCode := c.getStatusCodeForBudgetError(budgetErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetAlreadyExists,
		domainerror.ErrCodeBudgetConsolidated,
		domainerror.ErrCodeMonthNotEnded:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidBudgetType,
		domainerror.ErrCodeInvalidBudgetAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
