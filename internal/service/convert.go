package service

import (
	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		CreatedAt: u.CreatedAt,
	}
}

func batchToAPI(b *models.Batch) *api.Batch {
	members := b.MemberIDs
	if members == nil {
		members = []string{}
	}
	return &api.Batch{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		MemberIDs:   members,
		CreatedAt:   b.CreatedAt,
	}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		SplitMethod: string(e.SplitMethod),
		CreatedBy:   e.CreatedBy,
		BatchID:     e.BatchID,
		CreatedAt:   e.CreatedAt,
		Splits:      splits,
	}
}

func splitRequestsFromAPI(in []api.SplitInput) []models.SplitRequest {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.SplitRequest, len(in))
	for i, s := range in {
		out[i] = models.SplitRequest{
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return out
}

func userExpensesToAPI(rows []models.UserExpense) []api.UserExpense {
	out := make([]api.UserExpense, len(rows))
	for i, r := range rows {
		out[i] = api.UserExpense{
			ExpenseID:   r.ExpenseID,
			Description: r.Description,
			TotalAmount: r.TotalAmount,
			SplitMethod: string(r.SplitMethod),
			UserAmount:  r.UserAmount,
			Percentage:  r.Percentage,
			CreatedBy:   r.CreatedBy,
			BatchID:     r.BatchID,
			BatchName:   r.BatchName,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

func batchExpensesToAPI(rows []models.BatchExpense) []api.BatchExpense {
	out := make([]api.BatchExpense, len(rows))
	for i, r := range rows {
		out[i] = api.BatchExpense{
			ID:            r.ID,
			Description:   r.Description,
			Amount:        r.Amount,
			SplitMethod:   string(r.SplitMethod),
			CreatedBy:     r.CreatedBy,
			CreatedByName: r.CreatedByName,
			CreatedAt:     r.CreatedAt,
		}
	}
	return out
}

func userSheetToAPI(s *balance.UserSheet) *api.GetUserBalanceSheetResponse {
	txs := make([]api.Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		kind := export.TypeExpense
		if t.IsPayment {
			kind = export.TypePayment
		}
		txs[i] = api.Transaction{
			ExpenseID:   t.ExpenseID,
			BatchID:     t.BatchID,
			BatchName:   t.BatchName,
			Description: t.Description,
			TotalAmount: t.TotalAmount,
			UserAmount:  t.UserAmount,
			Type:        kind,
			Date:        t.Date,
		}
	}
	return &api.GetUserBalanceSheetResponse{
		User: &api.User{
			ID:     s.User.ID,
			Name:   s.User.Name,
			Email:  s.User.Email,
			Mobile: s.User.Mobile,
		},
		Transactions: txs,
		Summary: api.Totals{
			TotalPaid:  s.Summary.TotalPaid,
			TotalOwed:  s.Summary.TotalOwed,
			NetBalance: s.Summary.NetBalance,
		},
	}
}

func batchSheetToAPI(s *balance.BatchSheet) *api.GetBatchBalanceSheetResponse {
	members := make([]api.MemberBalance, len(s.Members))
	memberIDs := make([]string, len(s.Members))
	for i, m := range s.Members {
		memberIDs[i] = m.UserID
		members[i] = api.MemberBalance{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Totals: api.Totals{
				TotalPaid:  m.TotalPaid,
				TotalOwed:  m.TotalOwed,
				NetBalance: m.NetBalance,
			},
		}
	}

	debts := make([]api.Debt, len(s.Debts))
	for i, d := range s.Debts {
		debts[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}

	return &api.GetBatchBalanceSheetResponse{
		Batch: &api.Batch{
			ID:          s.Batch.ID,
			Name:        s.Batch.Name,
			Description: s.Batch.Description,
			MemberIDs:   memberIDs,
		},
		Expenses: batchExpensesToAPI(s.Expenses),
		Members:  members,
		Summary: api.BatchSummary{
			TotalExpenses: s.Summary.TotalExpenses,
			MemberCount:   s.Summary.MemberCount,
		},
		Debts: debts,
	}
}
