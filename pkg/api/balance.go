package api

import "github.com/shopspring/decimal"

type Totals struct {
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

type Transaction struct {
	ExpenseID   string          `json:"expense_id"`
	BatchID     string          `json:"batch_id"`
	BatchName   string          `json:"batch_name"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	UserAmount  decimal.Decimal `json:"user_amount"`
	// Type is "Payment" when the user created the expense, else "Expense".
	Type string `json:"type"`
	Date int64  `json:"date"`
}

type GetUserBalanceSheetRequest struct {
	UserID string `json:"user_id"`
}

type GetUserBalanceSheetResponse struct {
	User         *User         `json:"user"`
	Transactions []Transaction `json:"transactions"`
	Summary      Totals        `json:"summary"`
}

type GetBatchBalanceSheetRequest struct {
	BatchID string `json:"batch_id"`
}

type MemberBalance struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Totals
}

type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type BatchSummary struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	MemberCount   int             `json:"member_count"`
}

type GetBatchBalanceSheetResponse struct {
	Batch    *Batch          `json:"batch"`
	Expenses []BatchExpense  `json:"expenses"`
	Members  []MemberBalance `json:"members"`
	Summary  BatchSummary    `json:"summary"`
	Debts    []Debt          `json:"debts"`
}
