package sqlite

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

const (
	usersTable         = "users"
	batchesTable       = "batches"
	batchMembersTable  = "batch_members"
	expensesTable      = "expenses"
	expenseSplitsTable = "expense_splits"
)

type userRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Mobile       string `db:"mobile"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Mobile:       r.Mobile,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func userRowFrom(u *models.User) userRow {
	return userRow{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Mobile:       u.Mobile,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

type batchRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	CreatedAt   int64  `db:"created_at"`
}

type memberRow struct {
	BatchID  string `db:"batch_id"`
	UserID   string `db:"user_id"`
	JoinedAt int64  `db:"joined_at"`
}

type expenseRow struct {
	ID          string          `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	SplitMethod string          `db:"split_method"`
	CreatedBy   string          `db:"created_by"`
	BatchID     string          `db:"batch_id"`
	CreatedAt   int64           `db:"created_at"`
}

func (r expenseRow) toModel() *models.Expense {
	return &models.Expense{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		SplitMethod: models.SplitMethod(r.SplitMethod),
		CreatedBy:   r.CreatedBy,
		BatchID:     r.BatchID,
		CreatedAt:   r.CreatedAt,
	}
}

type splitRow struct {
	ID         string              `db:"id"`
	ExpenseID  string              `db:"expense_id"`
	UserID     string              `db:"user_id"`
	Amount     decimal.Decimal     `db:"amount"`
	Percentage decimal.NullDecimal `db:"percentage"`
}

func (r splitRow) toModel() models.ExpenseSplit {
	return models.ExpenseSplit{
		ID:         r.ID,
		ExpenseID:  r.ExpenseID,
		UserID:     r.UserID,
		Amount:     r.Amount,
		Percentage: r.Percentage,
	}
}

func splitRowFrom(s models.ExpenseSplit) splitRow {
	return splitRow{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		UserID:     s.UserID,
		Amount:     s.Amount,
		Percentage: s.Percentage,
	}
}

// userExpenseRow is a split row joined with its expense and batch.
type userExpenseRow struct {
	ExpenseID   string              `db:"expense_id"`
	Description string              `db:"description"`
	TotalAmount decimal.Decimal     `db:"total_amount"`
	SplitMethod string              `db:"split_method"`
	UserAmount  decimal.Decimal     `db:"user_amount"`
	Percentage  decimal.NullDecimal `db:"percentage"`
	CreatedBy   string              `db:"created_by"`
	BatchID     string              `db:"batch_id"`
	BatchName   string              `db:"batch_name"`
	CreatedAt   int64               `db:"created_at"`
}

func (r userExpenseRow) toModel() models.UserExpense {
	return models.UserExpense{
		ExpenseID:   r.ExpenseID,
		Description: r.Description,
		TotalAmount: r.TotalAmount,
		SplitMethod: models.SplitMethod(r.SplitMethod),
		UserAmount:  r.UserAmount,
		Percentage:  r.Percentage,
		CreatedBy:   r.CreatedBy,
		BatchID:     r.BatchID,
		BatchName:   r.BatchName,
		CreatedAt:   r.CreatedAt,
	}
}

// batchExpenseRow is an expense joined with its creator's name.
type batchExpenseRow struct {
	ID            string          `db:"id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	SplitMethod   string          `db:"split_method"`
	CreatedBy     string          `db:"created_by"`
	CreatedByName string          `db:"created_by_name"`
	CreatedAt     int64           `db:"created_at"`
}

func (r batchExpenseRow) toModel() models.BatchExpense {
	return models.BatchExpense{
		ID:            r.ID,
		Description:   r.Description,
		Amount:        r.Amount,
		SplitMethod:   models.SplitMethod(r.SplitMethod),
		CreatedBy:     r.CreatedBy,
		CreatedByName: r.CreatedByName,
		CreatedAt:     r.CreatedAt,
	}
}
