package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestSummarizeUser(t *testing.T) {
	rows := []models.UserExpense{
		// alice paid 100, her own share is 50
		{ExpenseID: "e1", TotalAmount: d("100"), UserAmount: d("50"), CreatedBy: "alice"},
		// bob paid 30, alice owes 15
		{ExpenseID: "e2", TotalAmount: d("30"), UserAmount: d("15"), CreatedBy: "bob"},
		// carol paid 9, alice owes 3
		{ExpenseID: "e3", TotalAmount: d("9"), UserAmount: d("3"), CreatedBy: "carol"},
	}

	totals := SummarizeUser("alice", rows)

	assert.True(t, totals.TotalPaid.Equal(d("100")), "paid %s", totals.TotalPaid)
	assert.True(t, totals.TotalOwed.Equal(d("18")), "owed %s", totals.TotalOwed)
	assert.True(t, totals.NetBalance.Equal(d("82")), "net %s", totals.NetBalance)
}

func TestSummarizeUser_NoRows(t *testing.T) {
	totals := SummarizeUser("alice", nil)

	assert.True(t, totals.TotalPaid.IsZero())
	assert.True(t, totals.TotalOwed.IsZero())
	assert.True(t, totals.NetBalance.IsZero())
}

func TestIsPayment(t *testing.T) {
	row := models.UserExpense{CreatedBy: "alice"}

	assert.True(t, IsPayment("alice", row))
	assert.False(t, IsPayment("bob", row))
}

func TestCalculateBatchBalances(t *testing.T) {
	tests := []struct {
		name         string
		members      []string
		expenses     []models.BatchExpense
		splits       []models.ExpenseSplit
		validateFunc func(t *testing.T, balances []MemberBalance)
	}{
		{
			name:    "alice pays 90 split three ways",
			members: []string{"alice", "bob", "carol"},
			expenses: []models.BatchExpense{
				{ID: "e1", Amount: d("90"), CreatedBy: "alice"},
			},
			splits: []models.ExpenseSplit{
				{ExpenseID: "e1", UserID: "alice", Amount: d("30")},
				{ExpenseID: "e1", UserID: "bob", Amount: d("30")},
				{ExpenseID: "e1", UserID: "carol", Amount: d("30")},
			},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				require.Len(t, balances, 3)
				assert.Equal(t, "alice", balances[0].UserID)
				assert.True(t, balances[0].NetBalance.Equal(d("60")))
				assert.True(t, balances[1].NetBalance.Equal(d("-30")))
				assert.True(t, balances[2].NetBalance.Equal(d("-30")))
			},
		},
		{
			name:    "member without activity has zero balance",
			members: []string{"alice", "bob", "dave"},
			expenses: []models.BatchExpense{
				{ID: "e1", Amount: d("20"), CreatedBy: "bob"},
			},
			splits: []models.ExpenseSplit{
				{ExpenseID: "e1", UserID: "alice", Amount: d("10")},
				{ExpenseID: "e1", UserID: "bob", Amount: d("10")},
			},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				require.Len(t, balances, 3)
				assert.Equal(t, "dave", balances[2].UserID)
				assert.True(t, balances[2].TotalPaid.IsZero())
				assert.True(t, balances[2].TotalOwed.IsZero())
				assert.True(t, balances[2].NetBalance.IsZero())
			},
		},
		{
			name:    "empty batch",
			members: []string{"alice"},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				require.Len(t, balances, 1)
				assert.True(t, balances[0].NetBalance.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := CalculateBatchBalances(tt.members, tt.expenses, tt.splits)
			tt.validateFunc(t, balances)
		})
	}
}

func TestCalculateBatchBalances_NetSumsToZero(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	var expenses []models.BatchExpense
	var splits []models.ExpenseSplit

	amounts := []string{"100", "33.33", "0.05", "71.19"}
	for i, a := range amounts {
		creator := members[i%len(members)]
		id := "e" + a
		expenses = append(expenses, models.BatchExpense{ID: id, Amount: d(a), CreatedBy: creator})

		shares, err := Allocate(d(a), models.SplitEqual, members, nil)
		require.NoError(t, err)
		for _, s := range shares {
			s.ExpenseID = id
			splits = append(splits, s)
		}
	}

	balances := CalculateBatchBalances(members, expenses, splits)

	net := decimal.Zero
	for _, b := range balances {
		net = net.Add(b.NetBalance)
	}
	assert.True(t, net.Abs().LessThanOrEqual(Tolerance), "net balances summed to %s", net)
}

func TestTotalExpenses(t *testing.T) {
	expenses := []models.BatchExpense{
		{Amount: d("10.10")},
		{Amount: d("0.20")},
		{Amount: d("5")},
	}

	assert.True(t, TotalExpenses(expenses).Equal(d("15.30")))
	assert.True(t, TotalExpenses(nil).IsZero())
}

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances []MemberBalance
		want     []DebtEdge
	}{
		{
			name: "one creditor two debtors",
			balances: []MemberBalance{
				{UserID: "alice", Totals: Totals{NetBalance: d("60")}},
				{UserID: "bob", Totals: Totals{NetBalance: d("-30")}},
				{UserID: "carol", Totals: Totals{NetBalance: d("-30")}},
			},
			want: []DebtEdge{
				{From: "bob", To: "alice", Amount: d("30")},
				{From: "carol", To: "alice", Amount: d("30")},
			},
		},
		{
			name: "largest debtor pays largest creditor first",
			balances: []MemberBalance{
				{UserID: "alice", Totals: Totals{NetBalance: d("10")}},
				{UserID: "bob", Totals: Totals{NetBalance: d("40")}},
				{UserID: "carol", Totals: Totals{NetBalance: d("-45")}},
				{UserID: "dave", Totals: Totals{NetBalance: d("-5")}},
			},
			want: []DebtEdge{
				{From: "carol", To: "bob", Amount: d("40")},
				{From: "carol", To: "alice", Amount: d("5")},
				{From: "dave", To: "alice", Amount: d("5")},
			},
		},
		{
			name: "sub-cent balances are ignored",
			balances: []MemberBalance{
				{UserID: "alice", Totals: Totals{NetBalance: d("0.004")}},
				{UserID: "bob", Totals: Totals{NetBalance: d("-0.004")}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.balances)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].From, got[i].From)
				assert.Equal(t, tt.want[i].To, got[i].To)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount), "edge %d: want %s, got %s", i, tt.want[i].Amount, got[i].Amount)
			}
		})
	}
}
