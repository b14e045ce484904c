package models

import "github.com/shopspring/decimal"

// SplitMethod is the policy used to divide an expense among batch members.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly across all current batch members.
	SplitEqual SplitMethod = "equal"
	// SplitExact uses caller-supplied amounts per member.
	SplitExact SplitMethod = "exact"
	// SplitPercentage uses caller-supplied percentages per member.
	SplitPercentage SplitMethod = "percentage"
)

// Valid reports whether m is one of the supported split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	default:
		return false
	}
}

// ExpenseSplit is one member's share of an expense.
// The splits of an expense add up to the expense amount within one cent.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the expense this split belongs to.
	ExpenseID string

	// UserID is the batch member charged with this share.
	UserID string

	// Amount is the member's share of the expense.
	Amount decimal.Decimal

	// Percentage is the requested percentage for percentage splits.
	// Invalid (null) for equal and exact splits.
	Percentage decimal.NullDecimal
}

// SplitRequest is a caller-supplied share for exact or percentage splits.
// Exact splits read Amount; percentage splits read Percentage.
type SplitRequest struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}
