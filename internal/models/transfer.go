package models

import "time"

// Transfer records an inter-account movement. It is always created together
// with its two ledger entry legs (outgoing expense on the source account,
// incoming gain on the target account) in one atomic batch; the three records
// are never partially persisted.
type Transfer struct {
	ID              string    `json:"id"`
	PersonID        string    `json:"person_id"`
	SourceAccountID string    `json:"source_account_id"`
	TargetAccountID string    `json:"target_account_id"`
	AmountCents     int64     `json:"amount_cents"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description,omitempty"`
	ExpenseEntryID  string    `json:"expense_entry_id"`
	GainEntryID     string    `json:"gain_entry_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransferResult carries the three ids produced by a successful transfer.
type TransferResult struct {
	TransferID     string `json:"transfer_id"`
	ExpenseEntryID string `json:"expense_entry_id"`
	GainEntryID    string `json:"gain_entry_id"`
}
