package api

import "github.com/shopspring/decimal"

// Batch is a named group of users sharing expenses.
type Batch struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids"`
	CreatedAt   int64    `json:"created_at"`
}

type CreateBatchRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids"`
}

type CreateBatchResponse struct {
	Batch *Batch `json:"batch"`
}

type AddBatchMembersRequest struct {
	BatchID string   `json:"batch_id"`
	UserIDs []string `json:"user_ids"`
}

type AddBatchMembersResponse struct {
	Batch *Batch `json:"batch"`
}

// SplitInput is a caller-supplied share. Exact splits read Amount,
// percentage splits read Percentage.
type SplitInput struct {
	UserID     string          `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Split is one member's stored share of an expense.
type Split struct {
	UserID     string              `json:"user_id"`
	Amount     decimal.Decimal     `json:"amount"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitMethod string          `json:"split_method"`
	CreatedBy   string          `json:"created_by"`
	BatchID     string          `json:"batch_id"`
	CreatedAt   int64           `json:"created_at"`
	Splits      []Split         `json:"splits"`
}

type AddExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	// SplitMethod is one of equal, exact, percentage.
	SplitMethod string `json:"split_method"`
	// CreatedBy must be the authenticated user.
	CreatedBy string       `json:"created_by"`
	BatchID   string       `json:"batch_id"`
	Splits    []SplitInput `json:"splits,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListUserExpensesRequest struct {
	UserID string `json:"user_id"`
	// Limit defaults to 100 when zero.
	Limit int `json:"limit,omitempty"`
}

// UserExpense is one of a user's split rows with its expense context.
type UserExpense struct {
	ExpenseID   string              `json:"expense_id"`
	Description string              `json:"description"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	SplitMethod string              `json:"split_method"`
	UserAmount  decimal.Decimal     `json:"user_amount"`
	Percentage  decimal.NullDecimal `json:"percentage"`
	CreatedBy   string              `json:"created_by"`
	BatchID     string              `json:"batch_id"`
	BatchName   string              `json:"batch_name"`
	CreatedAt   int64               `json:"created_at"`
}

type ListUserExpensesResponse struct {
	Expenses []UserExpense `json:"expenses"`
}

type ListBatchExpensesRequest struct {
	BatchID string `json:"batch_id"`
}

// BatchExpense is an expense of a batch with its creator's name.
type BatchExpense struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	SplitMethod   string          `json:"split_method"`
	CreatedBy     string          `json:"created_by"`
	CreatedByName string          `json:"created_by_name"`
	CreatedAt     int64           `json:"created_at"`
}

type ListBatchExpensesResponse struct {
	Expenses []BatchExpense `json:"expenses"`
}
