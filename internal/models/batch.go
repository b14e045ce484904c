package models

// Batch represents a named group of users who share expenses.
// Its member set only grows, through explicit additions.
type Batch struct {
	// ID is the unique identifier for the batch (UUID format).
	ID string

	// Name is the display name of the batch (e.g., "Goa Trip", "Flat 4B").
	Name string

	// Description is an optional free-form description.
	Description string

	// MemberIDs lists the user IDs of the batch members in the order they
	// joined. Equal splits assign the rounding residual to the last member
	// in this order.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the batch was created.
	CreatedAt int64
}

// HasMember reports whether userID is a member of the batch.
func (b *Batch) HasMember(userID string) bool {
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// BatchLedger is a consistent read of a batch and everything recorded in it.
type BatchLedger struct {
	Batch    *Batch
	Members  []*User        // Member order
	Expenses []BatchExpense // Newest first
	Splits   []ExpenseSplit
}
