// Package balance reconstructs user and batch balance sheets from the ledger.
package balance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// Ledger is the read side of the store used by the aggregator.
type Ledger interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUserTransactions(ctx context.Context, userID string) ([]models.UserExpense, error)
	GetBatchLedger(ctx context.Context, batchID string) (*models.BatchLedger, error)
}

// UserInfo is the contact block of a user balance sheet.
type UserInfo struct {
	ID     string
	Name   string
	Email  string
	Mobile string
}

// Transaction is one row of a user balance sheet.
type Transaction struct {
	ExpenseID   string
	BatchID     string
	BatchName   string
	Description string
	TotalAmount decimal.Decimal
	UserAmount  decimal.Decimal
	// IsPayment is true when the user created (paid for) the expense.
	IsPayment bool
	Date      int64
}

// UserSheet is a user's balance sheet across all batches.
type UserSheet struct {
	User         UserInfo
	Transactions []Transaction // Newest first
	Summary      calculator.Totals
}

// BatchInfo is the header block of a batch balance sheet.
type BatchInfo struct {
	ID          string
	Name        string
	Description string
}

// MemberBalance is one member's line on a batch balance sheet.
type MemberBalance struct {
	UserID string
	Name   string
	Email  string
	calculator.Totals
}

// BatchSummary holds batch-wide totals.
type BatchSummary struct {
	TotalExpenses decimal.Decimal
	MemberCount   int
}

// BatchSheet is a batch's balance sheet.
type BatchSheet struct {
	Batch    BatchInfo
	Expenses []models.BatchExpense // Newest first
	Members  []MemberBalance       // Member order
	Summary  BatchSummary
	// Debts suggests payments that would settle the member balances.
	Debts []calculator.DebtEdge
}

// Aggregator builds balance sheets from a Ledger.
type Aggregator struct {
	ledger Ledger
	logger *slog.Logger
}

// New creates an Aggregator.
func New(ledger Ledger, logger *slog.Logger) *Aggregator {
	return &Aggregator{ledger: ledger, logger: logger}
}

// UserBalanceSheet summarizes everything userID paid for or owes.
func (a *Aggregator) UserBalanceSheet(ctx context.Context, userID string) (*UserSheet, error) {
	var (
		user *models.User
		rows []models.UserExpense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = a.ledger.GetUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = a.ledger.ListUserTransactions(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	txs := make([]Transaction, len(rows))
	for i, row := range rows {
		txs[i] = Transaction{
			ExpenseID:   row.ExpenseID,
			BatchID:     row.BatchID,
			BatchName:   row.BatchName,
			Description: row.Description,
			TotalAmount: row.TotalAmount,
			UserAmount:  row.UserAmount,
			IsPayment:   calculator.IsPayment(userID, row),
			Date:        row.CreatedAt,
		}
	}

	sheet := &UserSheet{
		User: UserInfo{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Mobile: user.Mobile,
		},
		Transactions: txs,
		Summary:      calculator.SummarizeUser(userID, rows),
	}

	a.logger.DebugContext(ctx, "Generated user balance sheet",
		"user_id", userID,
		"transactions", len(txs),
		"net_balance", sheet.Summary.NetBalance.String(),
	)

	return sheet, nil
}

// BatchBalanceSheet computes per-member balances for a batch.
func (a *Aggregator) BatchBalanceSheet(ctx context.Context, batchID string) (*BatchSheet, error) {
	ledger, err := a.ledger.GetBatchLedger(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch ledger: %w", err)
	}
	batch, members, expenses := ledger.Batch, ledger.Members, ledger.Expenses

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	balances := calculator.CalculateBatchBalances(ids, expenses, ledger.Splits)

	lines := make([]MemberBalance, len(members))
	for i, m := range members {
		lines[i] = MemberBalance{
			UserID: m.ID,
			Name:   m.Name,
			Email:  m.Email,
			Totals: balances[i].Totals,
		}
	}

	sheet := &BatchSheet{
		Batch: BatchInfo{
			ID:          batch.ID,
			Name:        batch.Name,
			Description: batch.Description,
		},
		Expenses: expenses,
		Members:  lines,
		Summary: BatchSummary{
			TotalExpenses: calculator.TotalExpenses(expenses),
			MemberCount:   len(members),
		},
		Debts: calculator.SimplifyDebts(balances),
	}

	a.logger.DebugContext(ctx, "Generated batch balance sheet",
		"batch_id", batchID,
		"expenses", len(expenses),
		"members", len(members),
	)

	return sheet, nil
}
