package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/income"
	"github.com/budget-tracker/backend/internal/application/usecase/reconciliation"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReconciliationController handles the monthly report endpoints.
type ReconciliationController struct {
	spendingUseCase *reconciliation.GetSpendingUseCase
	incomeUseCase   *income.GetIncomePlanningUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(
	spendingUseCase *reconciliation.GetSpendingUseCase,
	incomeUseCase *income.GetIncomePlanningUseCase,
) *ReconciliationController {
	return &ReconciliationController{
		spendingUseCase: spendingUseCase,
		incomeUseCase:   incomeUseCase,
	}
}

// GetSpending handles GET /reports/spending requests.
func (c *ReconciliationController) GetSpending(ctx *gin.Context) {
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

	input := reconciliation.GetSpendingInput{
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
		SkipCache: ctx.Query("refresh") == "true",
	}

	output, err := c.spendingUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute spending report",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingReportResponse(output.Report))
}

// GetIncomePlanning handles GET /reports/income-planning requests.
func (c *ReconciliationController) GetIncomePlanning(ctx *gin.Context) {
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

	input := income.GetIncomePlanningInput{
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
	}

	output, err := c.incomeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute income planning report",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomePlanningResponse(output.Report))
}
