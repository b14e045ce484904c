// Package storage provides abstractions for persistent ledger storage.
//
//go:generate mockgen -package mockstorage -source=store.go -destination=mock/mockstorage.go
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// DefaultUserExpenseLimit is the page size used by ListExpensesForUser when
// the caller passes a non-positive limit.
const DefaultUserExpenseLimit = 100

// Store defines the interface for ledger storage operations.
//
// Errors carry a serrors kind: ErrInvalidInput, ErrNotFound, ErrConflict or
// ErrStorage. Implementations do not retry.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are filled in when
	// empty. Returns ErrConflict if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateBatch persists a batch together with its membership rows in one
	// transaction. Duplicate member IDs are collapsed, keeping first
	// occurrence order. Returns ErrConflict if a member does not exist.
	CreateBatch(ctx context.Context, batch *models.Batch) error

	// GetBatch retrieves a batch and its member IDs in member order.
	GetBatch(ctx context.Context, batchID string) (*models.Batch, error)

	// AddBatchMembers appends users to a batch. Users already in the batch are
	// skipped. Returns the batch with its updated member list.
	AddBatchMembers(ctx context.Context, batchID string, userIDs []string) (*models.Batch, error)

	// ListBatchMembers returns the users of a batch in member order.
	ListBatchMembers(ctx context.Context, batchID string) ([]*models.User, error)

	// RecordExpense allocates and persists an expense and its splits
	// atomically. The member snapshot used for allocation is read inside the
	// same write transaction.
	RecordExpense(ctx context.Context, expense models.NewExpense) (*models.Expense, error)

	// GetExpense retrieves an expense with its splits in allocation order.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesForUser returns the user's split rows joined with their
	// expense and batch, newest first. A non-positive limit means
	// DefaultUserExpenseLimit; larger limits are capped by the implementation.
	ListExpensesForUser(ctx context.Context, userID string, limit int) ([]models.UserExpense, error)

	// ListUserTransactions returns every split row of the user, newest first.
	ListUserTransactions(ctx context.Context, userID string) ([]models.UserExpense, error)

	// ListExpensesForBatch returns the expenses of a batch, newest first.
	ListExpensesForBatch(ctx context.Context, batchID string) ([]models.BatchExpense, error)

	// ListBatchSplits returns every split of every expense in the batch.
	ListBatchSplits(ctx context.Context, batchID string) ([]models.ExpenseSplit, error)

	// GetBatchLedger returns the batch with its members, expenses and splits
	// read from a single snapshot.
	GetBatchLedger(ctx context.Context, batchID string) (*models.BatchLedger, error)

	// Close releases any resources held by the store.
	Close() error
}
