package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Totals is a paid/owed summary.
type Totals struct {
	TotalPaid  decimal.Decimal
	TotalOwed  decimal.Decimal
	NetBalance decimal.Decimal // Positive = is owed money, negative = owes money
}

// MemberBalance is the balance information for one batch member.
type MemberBalance struct {
	UserID string
	Totals
}

// DebtEdge represents a debt from one member to another.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount decimal.Decimal
}

// IsPayment reports whether a user's split row counts as money they paid:
// the user created (fronted) the expense.
func IsPayment(userID string, row models.UserExpense) bool {
	return row.CreatedBy == userID
}

// SummarizeUser folds a user's split rows into totals.
//
// total_paid sums the full expense amount of rows the user created;
// total_owed sums the user's share of rows created by others. The user's own
// share of an expense they created is counted in neither.
func SummarizeUser(userID string, rows []models.UserExpense) Totals {
	paid := decimal.Zero
	owed := decimal.Zero
	for _, row := range rows {
		if IsPayment(userID, row) {
			paid = paid.Add(row.TotalAmount)
		} else {
			owed = owed.Add(row.UserAmount)
		}
	}

	return Totals{TotalPaid: paid, TotalOwed: owed, NetBalance: paid.Sub(owed)}
}

// CalculateBatchBalances computes per-member balances for a batch.
//
// Algorithm:
//   - For each expense: creator contributed +amount
//   - For each split: the split's user owes its amount
//   - net_balance = total_paid - total_owed
//
// Balances are returned in members order. Expenses and splits naming users
// outside members are ignored.
func CalculateBatchBalances(members []string, expenses []models.BatchExpense, splits []models.ExpenseSplit) []MemberBalance {
	balances := make(map[string]*MemberBalance, len(members))
	for _, m := range members {
		balances[m] = &MemberBalance{
			UserID: m,
			Totals: Totals{TotalPaid: decimal.Zero, TotalOwed: decimal.Zero},
		}
	}

	for _, e := range expenses {
		if bal, ok := balances[e.CreatedBy]; ok {
			bal.TotalPaid = bal.TotalPaid.Add(e.Amount)
		}
	}
	for _, s := range splits {
		if bal, ok := balances[s.UserID]; ok {
			bal.TotalOwed = bal.TotalOwed.Add(s.Amount)
		}
	}

	result := make([]MemberBalance, len(members))
	for i, m := range members {
		bal := balances[m]
		bal.NetBalance = bal.TotalPaid.Sub(bal.TotalOwed)
		result[i] = *bal
	}

	return result
}

// TotalExpenses sums the amounts of expenses.
func TotalExpenses(expenses []models.BatchExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SimplifyDebts turns net balances into a short list of payments that would
// settle them, matching the largest debtor with the largest creditor until
// everyone is within a cent of zero.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	type party struct {
		id     string
		amount decimal.Decimal
	}

	var creditors, debtors []party
	for _, bal := range balances {
		if bal.NetBalance.GreaterThanOrEqual(Tolerance) {
			creditors = append(creditors, party{bal.UserID, bal.NetBalance})
		} else if bal.NetBalance.Neg().GreaterThanOrEqual(Tolerance) {
			debtors = append(debtors, party{bal.UserID, bal.NetBalance.Neg()})
		}
	}

	byAmount := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			if !ps[i].amount.Equal(ps[j].amount) {
				return ps[i].amount.GreaterThan(ps[j].amount)
			}
			return ps[i].id < ps[j].id
		}
	}
	sort.SliceStable(creditors, byAmount(creditors))
	sort.SliceStable(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)

		if amount.GreaterThanOrEqual(Tolerance) {
			edges = append(edges, DebtEdge{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		// Move on once fully settled (ignoring sub-cent noise)
		if debtors[i].amount.LessThan(Tolerance) {
			i++
		}
		if creditors[j].amount.LessThan(Tolerance) {
			j++
		}
	}

	return edges
}
