package service

import (
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestCreateBatch(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")

	batch := env.createBatch(t, alice, "Goa Trip", alice, bob)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "Goa Trip", batch.Name)
	assert.Equal(t, []string{alice.user.ID, bob.user.ID}, batch.MemberIDs)

	_, err := env.ledger.CreateBatch(t.Context(), withToken(alice, &api.CreateBatchRequest{Name: "  "}))
	requireCode(t, connect.CodeInvalidArgument, err)

	_, err = env.ledger.CreateBatch(t.Context(), withToken(alice, &api.CreateBatchRequest{
		Name:      "Ghosts",
		MemberIDs: []string{alice.user.ID, "no-such-user"},
	}))
	requireCode(t, connect.CodeAlreadyExists, err)

	_, err = env.ledger.CreateBatch(t.Context(), connect.NewRequest(&api.CreateBatchRequest{Name: "Anon"}))
	requireCode(t, connect.CodeUnauthenticated, err)
}

func TestAddBatchMembers(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	carol := env.register(t, "carol", "9876543212")

	batch := env.createBatch(t, alice, "Flat 4B", alice)

	resp, err := env.ledger.AddBatchMembers(t.Context(), withToken(alice, &api.AddBatchMembersRequest{
		BatchID: batch.ID,
		UserIDs: []string{bob.user.ID, alice.user.ID, carol.user.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{alice.user.ID, bob.user.ID, carol.user.ID}, resp.Msg.Batch.MemberIDs)

	_, err = env.ledger.AddBatchMembers(t.Context(), withToken(alice, &api.AddBatchMembersRequest{
		BatchID: "missing",
		UserIDs: []string{bob.user.ID},
	}))
	requireCode(t, connect.CodeNotFound, err)
}

func TestAddExpense_EqualSplit(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	carol := env.register(t, "carol", "9876543212")
	batch := env.createBatch(t, alice, "Dinner club", alice, bob, carol)

	resp, err := env.ledger.AddExpense(t.Context(), withToken(alice, &api.AddExpenseRequest{
		Description: "Dinner",
		Amount:      dec("100"),
		SplitMethod: "equal",
		CreatedBy:   alice.user.ID,
		BatchID:     batch.ID,
	}))
	require.NoError(t, err)

	exp := resp.Msg.Expense
	assert.Equal(t, "Dinner", exp.Description)
	assert.Equal(t, "equal", exp.SplitMethod)
	require.Len(t, exp.Splits, 3)
	assert.Equal(t, "33.33", exp.Splits[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", exp.Splits[1].Amount.StringFixed(2))
	assert.Equal(t, "33.34", exp.Splits[2].Amount.StringFixed(2))
	assert.Equal(t, carol.user.ID, exp.Splits[2].UserID)
	assert.False(t, exp.Splits[0].Percentage.Valid)

	got, err := env.ledger.GetExpense(t.Context(), withToken(bob, &api.GetExpenseRequest{ExpenseID: exp.ID}))
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.Msg.Expense.ID)
	assert.True(t, dec("100").Equal(got.Msg.Expense.Amount))
	require.Len(t, got.Msg.Expense.Splits, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ExpensesRecorded.WithLabelValues("equal")))
}

func TestAddExpense_DefaultsCreatorToCaller(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	batch := env.createBatch(t, alice, "Solo", alice)

	resp, err := env.ledger.AddExpense(t.Context(), withToken(alice, &api.AddExpenseRequest{
		Description: "Groceries",
		Amount:      dec("12.50"),
		SplitMethod: "equal",
		BatchID:     batch.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, alice.user.ID, resp.Msg.Expense.CreatedBy)
}

func TestAddExpense_Rejections(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	carol := env.register(t, "carol", "9876543212")
	batch := env.createBatch(t, alice, "Trip", alice, bob)

	tests := []struct {
		name   string
		caller *session
		req    *api.AddExpenseRequest
		want   connect.Code
	}{
		{
			name:   "created_by is someone else",
			caller: alice,
			req:    &api.AddExpenseRequest{Description: "Taxi", Amount: dec("10"), SplitMethod: "equal", CreatedBy: bob.user.ID, BatchID: batch.ID},
			want:   connect.CodePermissionDenied,
		},
		{
			name:   "unsupported method",
			caller: alice,
			req:    &api.AddExpenseRequest{Description: "Taxi", Amount: dec("10"), SplitMethod: "shares", CreatedBy: alice.user.ID, BatchID: batch.ID},
			want:   connect.CodeInvalidArgument,
		},
		{
			name:   "non-positive amount",
			caller: alice,
			req:    &api.AddExpenseRequest{Description: "Taxi", Amount: dec("0"), SplitMethod: "equal", CreatedBy: alice.user.ID, BatchID: batch.ID},
			want:   connect.CodeInvalidArgument,
		},
		{
			name:   "exact splits off by more than a cent",
			caller: alice,
			req: &api.AddExpenseRequest{
				Description: "Hotel", Amount: dec("100"), SplitMethod: "exact", CreatedBy: alice.user.ID, BatchID: batch.ID,
				Splits: []api.SplitInput{
					{UserID: alice.user.ID, Amount: dec("60")},
					{UserID: bob.user.ID, Amount: dec("39.98")},
				},
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name:   "percentages below 100",
			caller: alice,
			req: &api.AddExpenseRequest{
				Description: "Fuel", Amount: dec("200"), SplitMethod: "percentage", CreatedBy: alice.user.ID, BatchID: batch.ID,
				Splits: []api.SplitInput{
					{UserID: alice.user.ID, Percentage: dec("50")},
					{UserID: bob.user.ID, Percentage: dec("49.5")},
				},
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name:   "creator not a member",
			caller: carol,
			req:    &api.AddExpenseRequest{Description: "Snacks", Amount: dec("5"), SplitMethod: "equal", CreatedBy: carol.user.ID, BatchID: batch.ID},
			want:   connect.CodeInvalidArgument,
		},
		{
			name:   "unknown batch",
			caller: alice,
			req:    &api.AddExpenseRequest{Description: "Taxi", Amount: dec("10"), SplitMethod: "equal", CreatedBy: alice.user.ID, BatchID: "missing"},
			want:   connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ledger.AddExpense(t.Context(), withToken(tt.caller, tt.req))
			requireCode(t, tt.want, err)
		})
	}

	list, err := env.ledger.ListBatchExpenses(t.Context(), withToken(alice, &api.ListBatchExpensesRequest{BatchID: batch.ID}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Expenses, "rejected expenses must leave no rows")
}

func TestListUserExpenses(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	batch := env.createBatch(t, alice, "Flat", alice, bob)

	for _, desc := range []string{"Rent", "Power", "Internet"} {
		_, err := env.ledger.AddExpense(t.Context(), withToken(alice, &api.AddExpenseRequest{
			Description: desc, Amount: dec("30"), SplitMethod: "equal", BatchID: batch.ID,
		}))
		require.NoError(t, err)
	}

	resp, err := env.ledger.ListUserExpenses(t.Context(), withToken(bob, &api.ListUserExpensesRequest{UserID: bob.user.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Expenses, 3)
	assert.Equal(t, "Internet", resp.Msg.Expenses[0].Description, "newest first")
	assert.Equal(t, "Flat", resp.Msg.Expenses[0].BatchName)
	assert.Equal(t, "15.00", resp.Msg.Expenses[0].UserAmount.StringFixed(2))
	assert.Equal(t, alice.user.ID, resp.Msg.Expenses[0].CreatedBy)

	limited, err := env.ledger.ListUserExpenses(t.Context(), withToken(bob, &api.ListUserExpensesRequest{UserID: bob.user.ID, Limit: 2}))
	require.NoError(t, err)
	assert.Len(t, limited.Msg.Expenses, 2)

	_, err = env.ledger.ListUserExpenses(t.Context(), withToken(alice, &api.ListUserExpensesRequest{UserID: bob.user.ID}))
	requireCode(t, connect.CodePermissionDenied, err)
}

func TestListBatchExpenses(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	batch := env.createBatch(t, alice, "Trip", alice, bob)

	_, err := env.ledger.AddExpense(t.Context(), withToken(bob, &api.AddExpenseRequest{
		Description: "Hotel",
		Amount:      dec("100"),
		SplitMethod: "exact",
		BatchID:     batch.ID,
		Splits: []api.SplitInput{
			{UserID: alice.user.ID, Amount: dec("60")},
			{UserID: bob.user.ID, Amount: dec("40")},
		},
	}))
	require.NoError(t, err)

	resp, err := env.ledger.ListBatchExpenses(t.Context(), withToken(alice, &api.ListBatchExpensesRequest{BatchID: batch.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Expenses, 1)
	assert.Equal(t, "bob", resp.Msg.Expenses[0].CreatedByName)
	assert.Equal(t, "exact", resp.Msg.Expenses[0].SplitMethod)

	_, err = env.ledger.ListBatchExpenses(t.Context(), withToken(alice, &api.ListBatchExpensesRequest{BatchID: "missing"}))
	requireCode(t, connect.CodeNotFound, err)
}

func TestAddExpense_ConcurrentEqualSplits(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "9876543210")
	bob := env.register(t, "bob", "9876543211")
	batch := env.createBatch(t, alice, "Busy", alice, bob)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.ledger.AddExpense(t.Context(), withToken(alice, &api.AddExpenseRequest{
				Description: "Coffee", Amount: dec("7.01"), SplitMethod: "equal", BatchID: batch.ID,
			}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	resp, err := env.ledger.ListBatchExpenses(t.Context(), withToken(alice, &api.ListBatchExpensesRequest{BatchID: batch.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Expenses, n)
}
