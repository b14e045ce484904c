// Package export renders balance sheets as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/calculator"
)

// ContentType is the MIME type of WriteUserSheet output.
const ContentType = "text/csv"

// DateLayout is the layout of the Date column. Dates are written in UTC.
const DateLayout = "2006-01-02 15:04:05"

// TransactionHeader is the column order of the transaction block.
var TransactionHeader = []string{"Batch", "Description", "Total Amount", "User Amount", "Type", "Date"}

// Transaction types written to the Type column.
const (
	TypePayment = "Payment"
	TypeExpense = "Expense"
)

// FileName returns the download file name for a user's balance sheet.
func FileName(userID string) string {
	return fmt.Sprintf("user_%s_balance_sheet.csv", userID)
}

// WriteUserSheet writes a user balance sheet as CSV:
//
//	User Balance Sheet
//	Name,Email,Mobile
//	<name>,<email>,<mobile>
//	(blank)
//	Batch,Description,Total Amount,User Amount,Type,Date
//	<one row per transaction, newest first>
//	(blank)
//	Summary
//	Total Owed,<amount>
//	Total Paid,<amount>
//	Net Balance,<amount>
func WriteUserSheet(w io.Writer, sheet *balance.UserSheet) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"User Balance Sheet"},
		{"Name", "Email", "Mobile"},
		{sheet.User.Name, sheet.User.Email, sheet.User.Mobile},
		{},
		TransactionHeader,
	}
	for _, tx := range sheet.Transactions {
		kind := TypeExpense
		if tx.IsPayment {
			kind = TypePayment
		}
		records = append(records, []string{
			tx.BatchName,
			tx.Description,
			money(tx.TotalAmount),
			money(tx.UserAmount),
			kind,
			time.Unix(tx.Date, 0).UTC().Format(DateLayout),
		})
	}
	records = append(records,
		[]string{},
		[]string{"Summary"},
		[]string{"Total Owed", money(sheet.Summary.TotalOwed)},
		[]string{"Total Paid", money(sheet.Summary.TotalPaid)},
		[]string{"Net Balance", money(sheet.Summary.NetBalance)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write balance sheet csv: %w", err)
	}
	return nil
}

func money(v decimal.Decimal) string {
	return v.StringFixed(calculator.CurrencyPlaces)
}
