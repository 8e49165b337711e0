package dto

import (
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// SpendingReportResponse represents the month's reconciled spending.
// Monetary values are decimal strings keyed by category ID; the nil
// UUID key collects transactions whose category no longer resolves.
type SpendingReportResponse struct {
	Month            string            `json:"month"`
	CategorySpending map[string]string `json:"category_spending"`
	IncomeByCategory map[string]string `json:"income_by_category"`
	TotalExpenses    string            `json:"total_expenses"`
	TotalIncome      string            `json:"total_income"`
	Warnings         []string          `json:"warnings,omitempty"`
}

// IncomePlanningResponse represents the month's allocation check.
type IncomePlanningResponse struct {
	Month               string `json:"month"`
	TotalIncome         string `json:"total_income"`
	TotalPlannedExpense string `json:"total_planned_expense"`
	Unallocated         string `json:"unallocated"`
	UnallocatedPercent  string `json:"unallocated_percent"`
	Status              string `json:"status"`
	Message             string `json:"message,omitempty"`
}

// ToSpendingReportResponse converts a spending report to its DTO.
func ToSpendingReportResponse(report *valueobject.SpendingReport) SpendingReportResponse {
	categorySpending := make(map[string]string, len(report.CategorySpending))
	for id, amount := range report.CategorySpending {
		categorySpending[id.String()] = amount.StringFixed(2)
	}

	incomeByCategory := make(map[string]string, len(report.IncomeByCategory))
	for id, amount := range report.IncomeByCategory {
		incomeByCategory[id.String()] = amount.StringFixed(2)
	}

	return SpendingReportResponse{
		Month:            report.Month.String(),
		CategorySpending: categorySpending,
		IncomeByCategory: incomeByCategory,
		TotalExpenses:    report.TotalExpenses.StringFixed(2),
		TotalIncome:      report.TotalIncome.StringFixed(2),
		Warnings:         report.Warnings,
	}
}

// ToIncomePlanningResponse converts an allocation report to its DTO.
func ToIncomePlanningResponse(report valueobject.IncomePlanningReport) IncomePlanningResponse {
	return IncomePlanningResponse{
		Month:               report.Month.String(),
		TotalIncome:         report.TotalIncome.StringFixed(2),
		TotalPlannedExpense: report.TotalPlannedExpense.StringFixed(2),
		Unallocated:         report.Unallocated.StringFixed(2),
		UnallocatedPercent:  report.UnallocatedPercent.StringFixed(2),
		Status:              string(report.Status),
		Message:             report.Message,
	}
}
