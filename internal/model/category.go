package model

import "time"

// CategoryDirection constrains which transaction types a category may be
// attached to at creation time. Existing transactions keep their category
// reference even if the direction later stops matching.
type CategoryDirection string

// Supported category directions.
const (
	DirectionIncome  CategoryDirection = "income"
	DirectionExpense CategoryDirection = "expense"
	DirectionBoth    CategoryDirection = "both"
)

// Valid reports whether d is a supported direction.
func (d CategoryDirection) Valid() bool {
	switch d {
	case DirectionIncome, DirectionExpense, DirectionBoth:
		return true
	}
	return false
}

// Admits reports whether a transaction of type t may reference a category
// with this direction.
func (d CategoryDirection) Admits(t TransactionType) bool {
	switch d {
	case DirectionBoth:
		return true
	case DirectionIncome:
		return t == TypeIncome
	case DirectionExpense:
		return t == TypeExpense
	}
	return false
}

// CategoryFields is the caller-supplied portion of a category.
type CategoryFields struct {
	Name      string            `json:"name"`
	Direction CategoryDirection `json:"direction"`
	Icon      string            `json:"icon,omitempty"`
}

// Category labels transactions for spending reports. Categories are
// archive-only: hard deletion would orphan historical references.
type Category struct {
	CategoryFields
	CreatedAt  time.Time `json:"created_at"`
	ID         int64     `json:"id"`
	IsArchived bool      `json:"is_archived"`
}
