package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/pattern"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// PatternController handles advanced pattern endpoints.
type PatternController struct {
	createUseCase *pattern.CreatePatternUseCase
	listUseCase   *pattern.ListPatternsUseCase
	updateUseCase *pattern.UpdatePatternUseCase
	deleteUseCase *pattern.DeletePatternUseCase
	applyUseCase  *pattern.ApplyPatternUseCase
}

// NewPatternController creates a new pattern controller instance.
func NewPatternController(
	createUseCase *pattern.CreatePatternUseCase,
	listUseCase *pattern.ListPatternsUseCase,
	updateUseCase *pattern.UpdatePatternUseCase,
	deleteUseCase *pattern.DeletePatternUseCase,
	applyUseCase *pattern.ApplyPatternUseCase,
) *PatternController {
	return &PatternController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		applyUseCase:  applyUseCase,
	}
}

// parseOptionalAmount converts an optional decimal string.
func parseOptionalAmount(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// Create handles POST /patterns requests.
func (c *PatternController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreatePatternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	targetCategoryID, err := uuid.Parse(req.TargetCategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target category ID format",
		})
		return
	}

	amountMin, err := parseOptionalAmount(req.AmountMin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount_min format",
		})
		return
	}
	amountMax, err := parseOptionalAmount(req.AmountMax)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount_max format",
		})
		return
	}

	input := pattern.CreatePatternInput{
		OwnerType:          entity.OwnerTypeUser,
		OwnerID:            userID,
		DescriptionPattern: req.DescriptionPattern,
		DatePattern:        req.DatePattern,
		WeekdayPattern:     req.WeekdayPattern,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		TargetDescription:  req.TargetDescription,
		TargetCategoryID:   targetCategoryID,
		ApplyRetroactively: req.ApplyRetroactively,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatePatternResponse{
		Pattern:        dto.ToPatternResponse(output.Pattern),
		RewrittenCount: output.RewrittenCount,
	})
}

// List handles GET /patterns requests.
func (c *PatternController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := pattern.ListPatternsInput{
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPatternListResponse(output.Patterns))
}

// Update handles PATCH /patterns/:id requests.
func (c *PatternController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid pattern ID format",
		})
		return
	}

	var req dto.UpdatePatternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	amountMin, err := parseOptionalAmount(req.AmountMin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount_min format",
		})
		return
	}
	amountMax, err := parseOptionalAmount(req.AmountMax)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount_max format",
		})
		return
	}

	input := pattern.UpdatePatternInput{
		PatternID:          patternID,
		OwnerType:          entity.OwnerTypeUser,
		OwnerID:            userID,
		DescriptionPattern: req.DescriptionPattern,
		DatePattern:        req.DatePattern,
		WeekdayPattern:     req.WeekdayPattern,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		TargetDescription:  req.TargetDescription,
		IsActive:           req.IsActive,
	}
	if req.TargetCategoryID != nil {
		targetCategoryID, err := uuid.Parse(*req.TargetCategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid target category ID format",
			})
			return
		}
		input.TargetCategoryID = &targetCategoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPatternResponse(output.Pattern))
}

// Delete handles DELETE /patterns/:id requests.
func (c *PatternController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid pattern ID format",
		})
		return
	}

	input := pattern.DeletePatternInput{
		PatternID: patternID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Apply handles POST /patterns/:id/apply requests. Without month/year
// query parameters the re-scan covers the owner's full history.
func (c *PatternController) Apply(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid pattern ID format",
		})
		return
	}

	var monthRef *valueobject.MonthRef
	if ctx.Query("month") != "" || ctx.Query("year") != "" {
		month, year, ok := parseMonthYearQuery(ctx)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month or year",
			})
			return
		}
		ref, err := valueobject.NewMonthRef(month, year)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month or year",
			})
			return
		}
		monthRef = &ref
	}

	input := pattern.ApplyPatternInput{
		PatternID: patternID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     monthRef,
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplyPatternResponse{
		RewrittenCount: output.RewrittenCount,
	})
}

// handlePatternError handles pattern errors and returns appropriate HTTP responses.
func (c *PatternController) handlePatternError(ctx *gin.Context, err error) {
	var patternErr *domainerror.PatternError
	if errors.As(err, &patternErr) {
		statusCode := c.getStatusCodeForPatternError(patternErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: patternErr.Message,
			Code:  string(patternErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPatternError maps pattern error codes to HTTP status codes.
func (c *PatternController) getStatusCodeForPatternError(code domainerror.PatternErrorCode) int {
	switch code {
	case domainerror.ErrCodePatternNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPatternRegex,
		domainerror.ErrCodePatternDescriptionRequired,
		domainerror.ErrCodePatternTargetRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
