package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService: batches and expenses.
type LedgerService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, metrics: m, logger: logger}
}

// CreateBatch creates a batch with the given members.
func (s *LedgerService) CreateBatch(ctx context.Context, req *connect.Request[api.CreateBatchRequest]) (*connect.Response[api.CreateBatchResponse], error) {
	s.logger.InfoContext(ctx, "CreateBatch request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	batch := &models.Batch{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		MemberIDs:   req.Msg.MemberIDs,
	}
	if err := s.store.CreateBatch(ctx, batch); err != nil {
		s.logger.WarnContext(ctx, "CreateBatch failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Batch created", "batch_id", batch.ID)

	return connect.NewResponse(&api.CreateBatchResponse{Batch: batchToAPI(batch)}), nil
}

// AddBatchMembers adds users to an existing batch.
func (s *LedgerService) AddBatchMembers(ctx context.Context, req *connect.Request[api.AddBatchMembersRequest]) (*connect.Response[api.AddBatchMembersResponse], error) {
	batch, err := s.store.AddBatchMembers(ctx, req.Msg.BatchID, req.Msg.UserIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "AddBatchMembers failed", "batch_id", req.Msg.BatchID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Batch members added",
		"batch_id", batch.ID,
		"members_count", len(batch.MemberIDs),
	)

	return connect.NewResponse(&api.AddBatchMembersResponse{Batch: batchToAPI(batch)}), nil
}

// AddExpense records an expense paid by the authenticated user. An empty
// created_by defaults to the caller.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	authUserID := middleware.GetUserID(ctx)
	createdBy := req.Msg.CreatedBy
	if createdBy == "" {
		createdBy = authUserID
	}
	if err := requireSelf(authUserID, createdBy); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "AddExpense request received",
		"batch_id", req.Msg.BatchID,
		"split_method", req.Msg.SplitMethod,
		"amount", req.Msg.Amount.String(),
	)

	expense, err := s.store.RecordExpense(ctx, models.NewExpense{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		SplitMethod: models.SplitMethod(req.Msg.SplitMethod),
		CreatedBy:   createdBy,
		BatchID:     req.Msg.BatchID,
		Splits:      splitRequestsFromAPI(req.Msg.Splits),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "AddExpense failed", "batch_id", req.Msg.BatchID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ObserveExpense(string(expense.SplitMethod))

	s.logger.InfoContext(ctx, "Expense recorded",
		"expense_id", expense.ID,
		"splits", len(expense.Splits),
	)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// GetExpense returns an expense with its splits.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListUserExpenses returns the caller's split rows, newest first.
func (s *LedgerService) ListUserExpenses(ctx context.Context, req *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error) {
	if err := requireSelf(middleware.GetUserID(ctx), req.Msg.UserID); err != nil {
		return nil, toConnectError(err)
	}
	if _, err := s.store.GetUser(ctx, req.Msg.UserID); err != nil {
		return nil, toConnectError(err)
	}

	rows, err := s.store.ListExpensesForUser(ctx, req.Msg.UserID, req.Msg.Limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListUserExpenses failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListUserExpensesResponse{Expenses: userExpensesToAPI(rows)}), nil
}

// ListBatchExpenses returns a batch's expenses, newest first.
func (s *LedgerService) ListBatchExpenses(ctx context.Context, req *connect.Request[api.ListBatchExpensesRequest]) (*connect.Response[api.ListBatchExpensesResponse], error) {
	rows, err := s.store.ListExpensesForBatch(ctx, req.Msg.BatchID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListBatchExpensesResponse{Expenses: batchExpensesToAPI(rows)}), nil
}
