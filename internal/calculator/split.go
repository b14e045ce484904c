package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// CurrencyPlaces is the number of decimal places of the ledger currency.
const CurrencyPlaces = 2

var (
	// Tolerance is the largest accepted difference between a split total and
	// its target (one cent, or 0.01 percentage points).
	Tolerance = decimal.New(1, -CurrencyPlaces)

	hundred = decimal.NewFromInt(100)
)

// IsCentPrecise reports whether v has no more than CurrencyPlaces decimal
// places.
func IsCentPrecise(v decimal.Decimal) bool {
	return v.Equal(v.Truncate(CurrencyPlaces))
}

// Allocate computes the per-member shares of an expense.
//
// members is the batch's member snapshot in join order. requested carries the
// caller-supplied shares for exact and percentage splits. The returned splits
// have no IDs; the storage layer assigns them.
//
// Rounding: equal shares are floored to cents and the last share absorbs the
// residual. Percentage shares are amount*pct/totalPct floored to cents, with
// the leftover cents going to the largest remainders. Both always sum to
// amount exactly. Exact shares are stored as given.
func Allocate(amount decimal.Decimal, method models.SplitMethod, members []string, requested []models.SplitRequest) ([]models.ExpenseSplit, error) {
	if !amount.IsPositive() {
		return nil, serrors.With(serrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !IsCentPrecise(amount) {
		return nil, serrors.With(serrors.ErrInvalidInput, "amount %s has more than %d decimal places", amount.String(), CurrencyPlaces)
	}

	switch method {
	case models.SplitEqual:
		return allocateEqual(amount, members)
	case models.SplitExact:
		return allocateExact(amount, members, requested)
	case models.SplitPercentage:
		return allocatePercentage(amount, members, requested)
	default:
		return nil, serrors.With(serrors.ErrInvalidInput, "unsupported split method")
	}
}

// allocateEqual gives every member floor(amount/n) to the cent; the last
// member takes whatever is left.
func allocateEqual(amount decimal.Decimal, members []string) ([]models.ExpenseSplit, error) {
	if len(members) == 0 {
		return nil, serrors.With(serrors.ErrInvalidInput, "batch has no members to split among")
	}

	n := int64(len(members))
	share := amount.Div(decimal.NewFromInt(n)).RoundFloor(CurrencyPlaces)
	last := amount.Sub(share.Mul(decimal.NewFromInt(n - 1)))

	splits := make([]models.ExpenseSplit, len(members))
	for i, userID := range members {
		splits[i] = models.ExpenseSplit{UserID: userID, Amount: share}
	}
	splits[len(splits)-1].Amount = last

	return splits, nil
}

func allocateExact(amount decimal.Decimal, members []string, requested []models.SplitRequest) ([]models.ExpenseSplit, error) {
	if err := validateRequested(members, requested); err != nil {
		return nil, err
	}

	total := decimal.Zero
	splits := make([]models.ExpenseSplit, len(requested))
	for i, r := range requested {
		if r.Amount.IsNegative() {
			return nil, serrors.With(serrors.ErrInvalidInput, "split amount for user %s cannot be negative", r.UserID)
		}
		if !IsCentPrecise(r.Amount) {
			return nil, serrors.With(serrors.ErrInvalidInput,
				"split amount for user %s has more than %d decimal places", r.UserID, CurrencyPlaces)
		}
		total = total.Add(r.Amount)
		splits[i] = models.ExpenseSplit{UserID: r.UserID, Amount: r.Amount}
	}

	if total.Sub(amount).Abs().GreaterThan(Tolerance) {
		return nil, serrors.With(serrors.ErrInvalidInput,
			"exact splits add up to %s, expected %s", total.String(), amount.String())
	}

	return splits, nil
}

func allocatePercentage(amount decimal.Decimal, members []string, requested []models.SplitRequest) ([]models.ExpenseSplit, error) {
	if err := validateRequested(members, requested); err != nil {
		return nil, err
	}

	totalPct := decimal.Zero
	for _, r := range requested {
		if r.Percentage.IsNegative() {
			return nil, serrors.With(serrors.ErrInvalidInput, "percentage for user %s cannot be negative", r.UserID)
		}
		totalPct = totalPct.Add(r.Percentage)
	}
	if totalPct.Sub(hundred).Abs().GreaterThan(Tolerance) {
		return nil, serrors.With(serrors.ErrInvalidInput,
			"percentage splits must add up to 100%%, got %s%%", totalPct.String())
	}

	type part struct {
		index     int
		remainder decimal.Decimal
	}

	allocated := decimal.Zero
	parts := make([]part, len(requested))
	splits := make([]models.ExpenseSplit, len(requested))
	for i, r := range requested {
		raw := amount.Mul(r.Percentage).Div(totalPct)
		share := raw.RoundFloor(CurrencyPlaces)
		allocated = allocated.Add(share)
		parts[i] = part{index: i, remainder: raw.Sub(share)}
		splits[i] = models.ExpenseSplit{
			UserID:     r.UserID,
			Amount:     share,
			Percentage: decimal.NewNullDecimal(r.Percentage),
		}
	}

	// Ties keep request order.
	slices.SortStableFunc(parts, func(a, b part) int {
		return b.remainder.Cmp(a.remainder)
	})
	leftover := amount.Sub(allocated).Div(Tolerance).IntPart()
	for k := int64(0); k < leftover; k++ {
		i := parts[k%int64(len(parts))].index
		splits[i].Amount = splits[i].Amount.Add(Tolerance)
	}

	return splits, nil
}

// validateRequested checks that explicit shares are present, reference batch
// members only, and name each member at most once.
func validateRequested(members []string, requested []models.SplitRequest) error {
	if len(requested) == 0 {
		return serrors.With(serrors.ErrInvalidInput, "splits are required for this split method")
	}

	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}

	seen := make(map[string]bool, len(requested))
	for _, r := range requested {
		if r.UserID == "" {
			return serrors.With(serrors.ErrInvalidInput, "split is missing a user id")
		}
		if !memberSet[r.UserID] {
			return serrors.With(serrors.ErrInvalidInput, "user %s is not a member of the batch", r.UserID)
		}
		if seen[r.UserID] {
			return serrors.With(serrors.ErrInvalidInput, "user %s appears more than once in splits", r.UserID)
		}
		seen[r.UserID] = true
	}

	return nil
}
