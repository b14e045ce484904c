package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// SheetBuilder builds balance sheets. *balance.Aggregator implements it.
type SheetBuilder interface {
	UserBalanceSheet(ctx context.Context, userID string) (*balance.UserSheet, error)
	BatchBalanceSheet(ctx context.Context, batchID string) (*balance.BatchSheet, error)
}

// BalanceService implements the Connect BalanceService.
type BalanceService struct {
	sheets SheetBuilder
	logger *slog.Logger
}

var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// NewBalanceService creates a BalanceService.
func NewBalanceService(sheets SheetBuilder, logger *slog.Logger) *BalanceService {
	return &BalanceService{sheets: sheets, logger: logger}
}

// GetUserBalanceSheet returns the caller's balance sheet across all batches.
func (s *BalanceService) GetUserBalanceSheet(ctx context.Context, req *connect.Request[api.GetUserBalanceSheetRequest]) (*connect.Response[api.GetUserBalanceSheetResponse], error) {
	if err := requireSelf(middleware.GetUserID(ctx), req.Msg.UserID); err != nil {
		return nil, toConnectError(err)
	}

	sheet, err := s.sheets.UserBalanceSheet(ctx, req.Msg.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "GetUserBalanceSheet failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(userSheetToAPI(sheet)), nil
}

// GetBatchBalanceSheet returns per-member balances and suggested settlements.
func (s *BalanceService) GetBatchBalanceSheet(ctx context.Context, req *connect.Request[api.GetBatchBalanceSheetRequest]) (*connect.Response[api.GetBatchBalanceSheetResponse], error) {
	sheet, err := s.sheets.BatchBalanceSheet(ctx, req.Msg.BatchID)
	if err != nil {
		s.logger.WarnContext(ctx, "GetBatchBalanceSheet failed", "batch_id", req.Msg.BatchID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(batchSheetToAPI(sheet)), nil
}
