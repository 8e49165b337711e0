package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreatePatternRequest represents the request body for pattern creation.
// Amount bounds cross the API as decimal strings.
type CreatePatternRequest struct {
	DescriptionPattern string  `json:"description_pattern" binding:"required,min=1,max=255"`
	DatePattern        string  `json:"date_pattern,omitempty"`
	WeekdayPattern     string  `json:"weekday_pattern,omitempty"`
	AmountMin          *string `json:"amount_min,omitempty"`
	AmountMax          *string `json:"amount_max,omitempty"`
	TargetDescription  string  `json:"target_description" binding:"required,min=1,max=255"`
	TargetCategoryID   string  `json:"target_category_id" binding:"required,uuid"`
	ApplyRetroactively bool    `json:"apply_retroactively,omitempty"`
}

// UpdatePatternRequest represents the request body for a pattern patch.
type UpdatePatternRequest struct {
	DescriptionPattern *string `json:"description_pattern,omitempty" binding:"omitempty,min=1,max=255"`
	DatePattern        *string `json:"date_pattern,omitempty"`
	WeekdayPattern     *string `json:"weekday_pattern,omitempty"`
	AmountMin          *string `json:"amount_min,omitempty"`
	AmountMax          *string `json:"amount_max,omitempty"`
	TargetDescription  *string `json:"target_description,omitempty" binding:"omitempty,min=1,max=255"`
	TargetCategoryID   *string `json:"target_category_id,omitempty" binding:"omitempty,uuid"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

// PatternResponse represents a single pattern in API responses.
type PatternResponse struct {
	ID                 string    `json:"id"`
	DescriptionPattern string    `json:"description_pattern"`
	DatePattern        string    `json:"date_pattern,omitempty"`
	WeekdayPattern     string    `json:"weekday_pattern,omitempty"`
	AmountMin          *string   `json:"amount_min,omitempty"`
	AmountMax          *string   `json:"amount_max,omitempty"`
	TargetDescription  string    `json:"target_description"`
	TargetCategoryID   string    `json:"target_category_id"`
	ApplyRetroactively bool      `json:"apply_retroactively"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PatternListResponse represents the response for listing patterns.
type PatternListResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

// CreatePatternResponse includes the retroactive rewrite count.
type CreatePatternResponse struct {
	Pattern        PatternResponse `json:"pattern"`
	RewrittenCount int             `json:"rewritten_count"`
}

// ApplyPatternResponse reports the result of an on-demand apply.
type ApplyPatternResponse struct {
	RewrittenCount int `json:"rewritten_count"`
}

// ToPatternResponse converts a domain AdvancedPattern entity to a DTO.
func ToPatternResponse(pattern *entity.AdvancedPattern) PatternResponse {
	var amountMin, amountMax *string
	if pattern.AmountMin != nil {
		v := pattern.AmountMin.StringFixed(2)
		amountMin = &v
	}
	if pattern.AmountMax != nil {
		v := pattern.AmountMax.StringFixed(2)
		amountMax = &v
	}

	return PatternResponse{
		ID:                 pattern.ID.String(),
		DescriptionPattern: pattern.DescriptionPattern,
		DatePattern:        pattern.DatePattern,
		WeekdayPattern:     pattern.WeekdayPattern,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		TargetDescription:  pattern.TargetDescription,
		TargetCategoryID:   pattern.TargetCategoryID.String(),
		ApplyRetroactively: pattern.ApplyRetroactively,
		IsActive:           pattern.IsActive,
		CreatedAt:          pattern.CreatedAt,
		UpdatedAt:          pattern.UpdatedAt,
	}
}

// ToPatternListResponse converts patterns to PatternListResponse.
func ToPatternListResponse(patterns []*entity.AdvancedPattern) PatternListResponse {
	responses := make([]PatternResponse, len(patterns))
	for i, p := range patterns {
		responses[i] = ToPatternResponse(p)
	}
	return PatternListResponse{Patterns: responses}
}
