// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType represents the type of owner for a resource.
type OwnerType string

const (
	OwnerTypeUser         OwnerType = "user"
	OwnerTypeOrganization OwnerType = "organization"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category in the Budget Tracker system.
// Income categories are excluded from expense-spending aggregation and
// vice versa.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	OwnerType OwnerType
	OwnerID   uuid.UUID
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(name, color, icon string, ownerType OwnerType, ownerID uuid.UUID, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsIncome reports whether the category holds income transactions.
func (c *Category) IsIncome() bool {
	return c.Type == CategoryTypeIncome
}
