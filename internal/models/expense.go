package models

import "github.com/shopspring/decimal"

// Expense is an append-only ledger entry: money fronted by one batch member
// and shared among members according to SplitMethod.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is what the money was spent on (e.g., "Dinner").
	Description string

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal

	// SplitMethod is the policy used to compute Splits.
	SplitMethod SplitMethod

	// CreatedBy is the user who paid. Always a member of BatchID.
	CreatedBy string

	// BatchID is the batch the expense belongs to.
	BatchID string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the per-member shares, in allocation order.
	Splits []ExpenseSplit
}

// NewExpense is the input for recording an expense.
type NewExpense struct {
	Description string
	Amount      decimal.Decimal
	SplitMethod SplitMethod
	CreatedBy   string
	BatchID     string

	// Splits is required for exact and percentage splits and ignored for
	// equal splits.
	Splits []SplitRequest
}

// UserExpense is one of a user's split rows joined with its expense and batch.
type UserExpense struct {
	ExpenseID   string
	Description string
	TotalAmount decimal.Decimal
	SplitMethod SplitMethod
	UserAmount  decimal.Decimal
	Percentage  decimal.NullDecimal
	CreatedBy   string
	BatchID     string
	BatchName   string
	CreatedAt   int64
}

// BatchExpense is an expense of a batch joined with its creator's name.
type BatchExpense struct {
	ID            string
	Description   string
	Amount        decimal.Decimal
	SplitMethod   SplitMethod
	CreatedBy     string
	CreatedByName string
	CreatedAt     int64
}
