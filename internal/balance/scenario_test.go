package balance

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/serrors"
)

type ledgerFixture struct {
	store *sqlite.SQLiteStore
	agg   *Aggregator
	a, b  *models.User
	batch *models.Batch
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"), sqlite.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	a := models.NewUser("A", "a@example.com", "9876543210", "hash")
	b := models.NewUser("B", "b@example.com", "9876543211", "hash")
	require.NoError(t, store.CreateUser(ctx, a))
	require.NoError(t, store.CreateUser(ctx, b))

	batch := &models.Batch{Name: "Dinner club", MemberIDs: []string{a.ID, b.ID}}
	require.NoError(t, store.CreateBatch(ctx, batch))

	return &ledgerFixture{
		store: store,
		agg:   New(store, slog.New(slog.DiscardHandler)),
		a:     a,
		b:     b,
		batch: batch,
	}
}

func TestScenario_EqualDinner(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.store.RecordExpense(ctx, models.NewExpense{
		Description: "Dinner",
		Amount:      d("100"),
		SplitMethod: models.SplitEqual,
		CreatedBy:   f.a.ID,
		BatchID:     f.batch.ID,
	})
	require.NoError(t, err)

	sheetA, err := f.agg.UserBalanceSheet(ctx, f.a.ID)
	require.NoError(t, err)
	assert.True(t, sheetA.Summary.TotalPaid.Equal(d("100")))

	sheetB, err := f.agg.UserBalanceSheet(ctx, f.b.ID)
	require.NoError(t, err)
	assert.True(t, sheetB.Summary.TotalOwed.Equal(d("50")))
	require.Len(t, sheetB.Transactions, 1)
	assert.Equal(t, "Dinner club", sheetB.Transactions[0].BatchName)
	assert.False(t, sheetB.Transactions[0].IsPayment)
}

func TestScenario_ExactSplitCreatedByB(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.store.RecordExpense(ctx, models.NewExpense{
		Description: "Tickets",
		Amount:      d("80"),
		SplitMethod: models.SplitExact,
		CreatedBy:   f.b.ID,
		BatchID:     f.batch.ID,
		Splits: []models.SplitRequest{
			{UserID: f.a.ID, Amount: d("30")},
			{UserID: f.b.ID, Amount: d("50")},
		},
	})
	require.NoError(t, err)

	sheetA, err := f.agg.UserBalanceSheet(ctx, f.a.ID)
	require.NoError(t, err)
	assert.True(t, sheetA.Summary.TotalOwed.Equal(d("30")))

	sheetB, err := f.agg.UserBalanceSheet(ctx, f.b.ID)
	require.NoError(t, err)
	assert.True(t, sheetB.Summary.TotalPaid.Equal(d("80")))
}

func TestScenario_PercentageOffBy(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.store.RecordExpense(ctx, models.NewExpense{
		Description: "Groceries",
		Amount:      d("100"),
		SplitMethod: models.SplitPercentage,
		CreatedBy:   f.a.ID,
		BatchID:     f.batch.ID,
		Splits: []models.SplitRequest{
			{UserID: f.a.ID, Percentage: d("49.5")},
			{UserID: f.b.ID, Percentage: d("50")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrInvalidInput)

	expenses, err := f.store.ListExpensesForBatch(ctx, f.batch.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	splits, err := f.store.ListBatchSplits(ctx, f.batch.ID)
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestScenario_UnknownUser(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.agg.UserBalanceSheet(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestScenario_ReadsAreIdempotent(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	for _, amount := range []string{"12.34", "56.78", "9.99"} {
		_, err := f.store.RecordExpense(ctx, models.NewExpense{
			Description: "round " + amount,
			Amount:      d(amount),
			SplitMethod: models.SplitEqual,
			CreatedBy:   f.b.ID,
			BatchID:     f.batch.ID,
		})
		require.NoError(t, err)
	}

	first, err := f.agg.UserBalanceSheet(ctx, f.a.ID)
	require.NoError(t, err)
	second, err := f.agg.UserBalanceSheet(ctx, f.a.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScenario_BatchLedgerIsClosed(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	c := models.NewUser("C", "c@example.com", "9876543212", "hash")
	require.NoError(t, f.store.CreateUser(ctx, c))
	_, err := f.store.AddBatchMembers(ctx, f.batch.ID, []string{c.ID})
	require.NoError(t, err)

	inputs := []models.NewExpense{
		{Description: "Dinner", Amount: d("100"), SplitMethod: models.SplitEqual, CreatedBy: f.a.ID},
		{Description: "Cab", Amount: d("45.50"), SplitMethod: models.SplitExact, CreatedBy: f.b.ID, Splits: []models.SplitRequest{
			{UserID: f.a.ID, Amount: d("20")},
			{UserID: c.ID, Amount: d("25.50")},
		}},
		{Description: "Hotel", Amount: d("333.33"), SplitMethod: models.SplitPercentage, CreatedBy: c.ID, Splits: []models.SplitRequest{
			{UserID: f.a.ID, Percentage: d("33.33")},
			{UserID: f.b.ID, Percentage: d("33.33")},
			{UserID: c.ID, Percentage: d("33.34")},
		}},
	}
	for _, in := range inputs {
		in.BatchID = f.batch.ID
		_, err := f.store.RecordExpense(ctx, in)
		require.NoError(t, err, in.Description)
	}

	sheet, err := f.agg.BatchBalanceSheet(ctx, f.batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sheet.Summary.MemberCount)
	assert.True(t, sheet.Summary.TotalExpenses.Equal(d("478.83")))
	assert.Equal(t, "Hotel", sheet.Expenses[0].Description)
	assert.Equal(t, "C", sheet.Expenses[0].CreatedByName)

	net := decimal.Zero
	for _, m := range sheet.Members {
		net = net.Add(m.NetBalance)
	}
	assert.True(t, net.Abs().LessThanOrEqual(calculator.Tolerance), "net balances summed to %s", net)

	settled := decimal.Zero
	for _, debt := range sheet.Debts {
		settled = settled.Add(debt.Amount)
	}
	assert.True(t, settled.IsPositive())
}

func TestScenario_BatchSheetDuringWrites(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	const writes = 20
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := 0; i < writes; i++ {
			_, err := f.store.RecordExpense(gctx, models.NewExpense{
				Description: fmt.Sprintf("Round %d", i),
				Amount:      d("10.01"),
				SplitMethod: models.SplitEqual,
				CreatedBy:   f.a.ID,
				BatchID:     f.batch.ID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < writes; i++ {
			sheet, err := f.agg.BatchBalanceSheet(gctx, f.batch.ID)
			if err != nil {
				return err
			}
			net := decimal.Zero
			for _, m := range sheet.Members {
				net = net.Add(m.NetBalance)
			}
			if !net.IsZero() {
				return fmt.Errorf("sheet with %d expenses has net balance %s", len(sheet.Expenses), net)
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	sheet, err := f.agg.BatchBalanceSheet(ctx, f.batch.ID)
	require.NoError(t, err)
	assert.Len(t, sheet.Expenses, writes)
	assert.True(t, sheet.Summary.TotalExpenses.Equal(d("200.20")))
}

func TestScenario_UnknownBatch(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.agg.BatchBalanceSheet(context.Background(), "no-such-batch")
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}
