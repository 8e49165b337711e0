package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/application/usecase/matching"
	"github.com/budget-tracker/backend/internal/application/usecase/plannedentry"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreatePlannedEntryRequest represents the request body for planned
// entry creation. Amounts cross the API as decimal strings; amount_max
// and expected_day_end default to their range start when omitted.
type CreatePlannedEntryRequest struct {
	CategoryID         string `json:"category_id" binding:"required,uuid"`
	Description        string `json:"description" binding:"required,min=1,max=255"`
	DescriptionPattern string `json:"description_pattern,omitempty"`
	AmountMin          string `json:"amount_min" binding:"required"`
	AmountMax          string `json:"amount_max,omitempty"`
	ExpectedDayStart   int    `json:"expected_day_start,omitempty"`
	ExpectedDayEnd     int    `json:"expected_day_end,omitempty"`
	Type               string `json:"type" binding:"required,oneof=expense income"`
	IsRecurrent        bool   `json:"is_recurrent,omitempty"`
}

// UpdatePlannedEntryRequest represents the request body for a planned
// entry patch.
type UpdatePlannedEntryRequest struct {
	CategoryID         *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Description        *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	DescriptionPattern *string `json:"description_pattern,omitempty"`
	AmountMin          *string `json:"amount_min,omitempty"`
	AmountMax          *string `json:"amount_max,omitempty"`
	ExpectedDayStart   *int    `json:"expected_day_start,omitempty"`
	ExpectedDayEnd     *int    `json:"expected_day_end,omitempty"`
	IsRecurrent        *bool   `json:"is_recurrent,omitempty"`
}

// MatchEntryRequest represents the request body for matching an entry
// to a transaction.
type MatchEntryRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// DismissEntryRequest represents the request body for dismissing an entry.
type DismissEntryRequest struct {
	Reason string `json:"reason,omitempty" binding:"omitempty,max=255"`
}

// PlannedEntryResponse represents a single planned entry in API responses.
type PlannedEntryResponse struct {
	ID                 string    `json:"id"`
	CategoryID         string    `json:"category_id"`
	Description        string    `json:"description"`
	DescriptionPattern string    `json:"description_pattern,omitempty"`
	AmountMin          string    `json:"amount_min"`
	AmountMax          string    `json:"amount_max"`
	ExpectedDayStart   int       `json:"expected_day_start,omitempty"`
	ExpectedDayEnd     int       `json:"expected_day_end,omitempty"`
	Type               string    `json:"type"`
	IsRecurrent        bool      `json:"is_recurrent"`
	ParentEntryID      *string   `json:"parent_entry_id,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EntryStatusResponse represents an entry's per-month status.
type EntryStatusResponse struct {
	Status               string  `json:"status"`
	MatchedTransactionID *string `json:"matched_transaction_id,omitempty"`
	MatchedAmount        *string `json:"matched_amount,omitempty"`
	DismissalReason      string  `json:"dismissal_reason,omitempty"`
}

// EntryWithStatusResponse pairs an entry with its status for a month.
type EntryWithStatusResponse struct {
	Entry  PlannedEntryResponse `json:"entry"`
	Status EntryStatusResponse  `json:"status"`
}

// MonthEntriesResponse represents the response for a month's entry listing.
type MonthEntriesResponse struct {
	Month   int                       `json:"month"`
	Year    int                       `json:"year"`
	Entries []EntryWithStatusResponse `json:"entries"`
}

// MatchSuggestionResponse represents one scored match candidate.
type MatchSuggestionResponse struct {
	Entry            PlannedEntryResponse `json:"entry"`
	CategoryScore    float64              `json:"category_score"`
	AmountScore      float64              `json:"amount_score"`
	DescriptionScore float64              `json:"description_score"`
	DateScore        float64              `json:"date_score"`
	TotalScore       float64              `json:"total_score"`
	Confidence       string               `json:"confidence"`
}

// MatchSuggestionsResponse represents the ranked suggestion list.
type MatchSuggestionsResponse struct {
	Suggestions []MatchSuggestionResponse `json:"suggestions"`
}

// ToPlannedEntryResponse converts a domain PlannedEntry entity to a DTO.
func ToPlannedEntryResponse(entry *entity.PlannedEntry) PlannedEntryResponse {
	var parentID *string
	if entry.ParentEntryID != nil {
		id := entry.ParentEntryID.String()
		parentID = &id
	}

	return PlannedEntryResponse{
		ID:                 entry.ID.String(),
		CategoryID:         entry.CategoryID.String(),
		Description:        entry.Description,
		DescriptionPattern: entry.DescriptionPattern,
		AmountMin:          entry.AmountMin.StringFixed(2),
		AmountMax:          entry.AmountMax.StringFixed(2),
		ExpectedDayStart:   entry.ExpectedDayStart,
		ExpectedDayEnd:     entry.ExpectedDayEnd,
		Type:               string(entry.Type),
		IsRecurrent:        entry.IsRecurrent,
		ParentEntryID:      parentID,
		IsActive:           entry.IsActive,
		CreatedAt:          entry.CreatedAt,
		UpdatedAt:          entry.UpdatedAt,
	}
}

// ToEntryStatusResponse builds the status DTO from a status record and
// the read-time effective status.
func ToEntryStatusResponse(status *entity.PlannedEntryStatus, effective entity.EntryStatus) EntryStatusResponse {
	resp := EntryStatusResponse{Status: string(effective)}
	if status == nil {
		return resp
	}
	if status.MatchedTransactionID != nil {
		id := status.MatchedTransactionID.String()
		resp.MatchedTransactionID = &id
	}
	if status.MatchedAmount != nil {
		amount := status.MatchedAmount.StringFixed(2)
		resp.MatchedAmount = &amount
	}
	resp.DismissalReason = status.DismissalReason
	return resp
}

// ToMonthEntriesResponse converts the month listing output to its DTO.
func ToMonthEntriesResponse(month, year int, entries []*plannedentry.EntryWithEffectiveStatus) MonthEntriesResponse {
	responses := make([]EntryWithStatusResponse, len(entries))
	for i, e := range entries {
		responses[i] = EntryWithStatusResponse{
			Entry:  ToPlannedEntryResponse(e.Entry),
			Status: ToEntryStatusResponse(e.Status, e.EffectiveStatus),
		}
	}
	return MonthEntriesResponse{
		Month:   month,
		Year:    year,
		Entries: responses,
	}
}

// ToMatchSuggestionsResponse converts scored suggestions to their DTO.
func ToMatchSuggestionsResponse(suggestions []matching.Suggestion) MatchSuggestionsResponse {
	responses := make([]MatchSuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = MatchSuggestionResponse{
			Entry:            ToPlannedEntryResponse(s.Entry),
			CategoryScore:    s.Score.CategoryScore.InexactFloat64(),
			AmountScore:      s.Score.AmountScore.InexactFloat64(),
			DescriptionScore: s.Score.DescriptionScore.InexactFloat64(),
			DateScore:        s.Score.DateScore.InexactFloat64(),
			TotalScore:       s.Score.TotalScore.InexactFloat64(),
			Confidence:       string(s.Score.Confidence),
		}
	}
	return MatchSuggestionsResponse{Suggestions: responses}
}
