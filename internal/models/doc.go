// Package models defines the core domain records of the ledger.
//
// # Records
//
//   - User: a registered person who can belong to batches
//   - Batch: a named group of users sharing expenses
//   - Expense: one append-only ledger entry paid by a batch member
//   - ExpenseSplit: one member's share of an expense
//
// # Read views
//
// UserExpense and BatchExpense are joined rows produced by the storage layer
// for listings and balance sheets. They replace positional row tuples with
// named fields.
//
// # Design Principles
//
// 1. **Append-only**: expenses and splits are written once and never mutated
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Avoid circular references**: relationships use ID strings, not pointers
package models
