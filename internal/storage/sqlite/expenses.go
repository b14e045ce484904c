package sqlite

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// RecordExpense validates, allocates and persists an expense with its splits.
//
// The batch's member list is read inside the write transaction, so an equal
// split always divides among the members present at commit time.
func (s *SQLiteStore) RecordExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error) {
	if err := validateNewExpense(&in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	expense := &models.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		SplitMethod: in.SplitMethod,
		CreatedBy:   in.CreatedBy,
		BatchID:     in.BatchID,
		CreatedAt:   s.now().Unix(),
	}

	err := s.inTx(ctx, func(b Builder) error {
		batch, err := getBatch(ctx, b, in.BatchID)
		if err != nil {
			return err
		}
		if !batch.HasMember(in.CreatedBy) {
			return serrors.With(serrors.ErrInvalidInput,
				"user %s is not a member of batch %s", in.CreatedBy, in.BatchID)
		}

		splits, err := calculator.Allocate(in.Amount, in.SplitMethod, batch.MemberIDs, in.Splits)
		if err != nil {
			return err
		}

		_, err = b.Insert(expensesTable).
			Rows(expenseRow{
				ID:          expense.ID,
				Description: expense.Description,
				Amount:      expense.Amount,
				SplitMethod: string(expense.SplitMethod),
				CreatedBy:   expense.CreatedBy,
				BatchID:     expense.BatchID,
				CreatedAt:   expense.CreatedAt,
			}).
			Executor().ExecContext(ctx)
		if err != nil {
			return classify(ctx, err, "failed to insert expense")
		}

		rows := make([]splitRow, len(splits))
		for i := range splits {
			splits[i].ID = uuid.New().String()
			splits[i].ExpenseID = expense.ID
			rows[i] = splitRowFrom(splits[i])
		}
		if _, err := b.Insert(expenseSplitsTable).Rows(rows).Executor().ExecContext(ctx); err != nil {
			return classify(ctx, err, "failed to insert expense splits")
		}

		expense.Splits = splits
		return nil
	})
	if err != nil {
		return nil, classify(ctx, err, "failed to record expense")
	}

	return expense, nil
}

// validateNewExpense checks the fields that need no I/O.
func validateNewExpense(in *models.NewExpense) error {
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.Description == "":
		return serrors.With(serrors.ErrInvalidInput, "description is required")
	case !in.Amount.IsPositive():
		return serrors.With(serrors.ErrInvalidInput, "amount must be greater than zero")
	case !calculator.IsCentPrecise(in.Amount):
		return serrors.With(serrors.ErrInvalidInput, "amount has more than %d decimal places", calculator.CurrencyPlaces)
	case !in.SplitMethod.Valid():
		return serrors.With(serrors.ErrInvalidInput, "unsupported split method")
	case in.CreatedBy == "":
		return serrors.With(serrors.ErrInvalidInput, "created_by is required")
	case in.BatchID == "":
		return serrors.With(serrors.ErrInvalidInput, "batch_id is required")
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var row expenseRow
	found, err := s.builder.From(expensesTable).
		Where(goqu.I("id").Eq(expenseID)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, classify(ctx, err, "failed to get expense")
	}
	if !found {
		return nil, serrors.With(serrors.ErrNotFound, "expense %s not found", expenseID)
	}

	var splitRows []splitRow
	err = s.builder.From(expenseSplitsTable).
		Where(goqu.I("expense_id").Eq(expenseID)).
		Order(goqu.I("rowid").Asc()).
		Executor().ScanStructsContext(ctx, &splitRows)
	if err != nil {
		return nil, classify(ctx, err, "failed to get expense splits")
	}

	expense := row.toModel()
	expense.Splits = make([]models.ExpenseSplit, len(splitRows))
	for i, r := range splitRows {
		expense.Splits[i] = r.toModel()
	}

	return expense, nil
}

// ListExpensesForUser returns a page of the user's split rows, newest first.
func (s *SQLiteStore) ListExpensesForUser(ctx context.Context, userID string, limit int) ([]models.UserExpense, error) {
	if limit <= 0 {
		limit = s.opts.UserExpenseLimit
	}
	if limit > s.opts.MaxUserExpenseLimit {
		limit = s.opts.MaxUserExpenseLimit
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := userExpenses(ctx, s.builder, userID, uint(limit))
	if err != nil {
		return nil, classify(ctx, err, "failed to list user expenses")
	}
	return rows, nil
}

// ListUserTransactions returns all of the user's split rows, newest first.
func (s *SQLiteStore) ListUserTransactions(ctx context.Context, userID string) ([]models.UserExpense, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := userExpenses(ctx, s.builder, userID, 0)
	if err != nil {
		return nil, classify(ctx, err, "failed to list user transactions")
	}
	return rows, nil
}

// userExpenses joins the user's splits with their expenses and batches.
// A zero limit means no limit.
func userExpenses(ctx context.Context, b Builder, userID string, limit uint) ([]models.UserExpense, error) {
	ds := b.From(goqu.T(expenseSplitsTable).As("es")).
		Join(goqu.T(expensesTable).As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("es.expense_id")))).
		Join(goqu.T(batchesTable).As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("e.batch_id")))).
		Select(
			goqu.I("e.id").As("expense_id"),
			goqu.I("e.description").As("description"),
			goqu.I("e.amount").As("total_amount"),
			goqu.I("e.split_method").As("split_method"),
			goqu.I("es.amount").As("user_amount"),
			goqu.I("es.percentage").As("percentage"),
			goqu.I("e.created_by").As("created_by"),
			goqu.I("e.batch_id").As("batch_id"),
			goqu.I("b.name").As("batch_name"),
			goqu.I("e.created_at").As("created_at"),
		).
		Where(goqu.I("es.user_id").Eq(userID)).
		Order(goqu.I("e.created_at").Desc(), goqu.I("e.rowid").Desc())
	if limit > 0 {
		ds = ds.Limit(limit)
	}

	var rows []userExpenseRow
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.UserExpense, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// ListExpensesForBatch returns a batch's expenses with creator names, newest first.
func (s *SQLiteStore) ListExpensesForBatch(ctx context.Context, batchID string) ([]models.BatchExpense, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := batchExists(ctx, s.builder, batchID); err != nil {
		return nil, classify(ctx, err, "failed to list batch expenses")
	}

	rows, err := batchExpenses(ctx, s.builder, batchID)
	if err != nil {
		return nil, classify(ctx, err, "failed to list batch expenses")
	}
	return rows, nil
}

func batchExpenses(ctx context.Context, b Builder, batchID string) ([]models.BatchExpense, error) {
	var rows []batchExpenseRow
	err := b.From(goqu.T(expensesTable).As("e")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("e.created_by")))).
		Select(
			goqu.I("e.id").As("id"),
			goqu.I("e.description").As("description"),
			goqu.I("e.amount").As("amount"),
			goqu.I("e.split_method").As("split_method"),
			goqu.I("e.created_by").As("created_by"),
			goqu.I("u.name").As("created_by_name"),
			goqu.I("e.created_at").As("created_at"),
		).
		Where(goqu.I("e.batch_id").Eq(batchID)).
		Order(goqu.I("e.created_at").Desc(), goqu.I("e.rowid").Desc()).
		Executor().ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]models.BatchExpense, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// ListBatchSplits returns every split of every expense in the batch.
func (s *SQLiteStore) ListBatchSplits(ctx context.Context, batchID string) ([]models.ExpenseSplit, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := batchExists(ctx, s.builder, batchID); err != nil {
		return nil, classify(ctx, err, "failed to list batch splits")
	}

	splits, err := batchSplits(ctx, s.builder, batchID)
	if err != nil {
		return nil, classify(ctx, err, "failed to list batch splits")
	}
	return splits, nil
}

func batchSplits(ctx context.Context, b Builder, batchID string) ([]models.ExpenseSplit, error) {
	var rows []splitRow
	err := b.From(goqu.T(expenseSplitsTable).As("es")).
		Join(goqu.T(expensesTable).As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("es.expense_id")))).
		Select(
			goqu.I("es.id").As("id"),
			goqu.I("es.expense_id").As("expense_id"),
			goqu.I("es.user_id").As("user_id"),
			goqu.I("es.amount").As("amount"),
			goqu.I("es.percentage").As("percentage"),
		).
		Where(goqu.I("e.batch_id").Eq(batchID)).
		Order(goqu.I("e.created_at").Asc(), goqu.I("e.rowid").Asc(), goqu.I("es.rowid").Asc()).
		Executor().ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]models.ExpenseSplit, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// GetBatchLedger reads a batch with its members, expenses and splits inside
// one transaction, so the parts always describe the same set of expenses.
func (s *SQLiteStore) GetBatchLedger(ctx context.Context, batchID string) (*models.BatchLedger, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ledger := &models.BatchLedger{}
	err := s.inTx(ctx, func(b Builder) error {
		var err error
		if ledger.Batch, err = getBatch(ctx, b, batchID); err != nil {
			return err
		}
		if ledger.Members, err = batchMembers(ctx, b, batchID); err != nil {
			return err
		}
		if ledger.Expenses, err = batchExpenses(ctx, b, batchID); err != nil {
			return err
		}
		ledger.Splits, err = batchSplits(ctx, b, batchID)
		return err
	})
	if err != nil {
		return nil, classify(ctx, err, "failed to read batch ledger")
	}

	return ledger, nil
}
