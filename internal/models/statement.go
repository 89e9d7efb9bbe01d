package models

import "time"

// StatementCandidate is one parsed line of an imported bank statement,
// offered to the user for confirmation before a ledger entry is created.
type StatementCandidate struct {
	Kind        EntryKind `json:"kind"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	CategoryID  string    `json:"category_id,omitempty"`
}

// StatementImport is the result of parsing one uploaded statement.
type StatementImport struct {
	AccountID  string               `json:"account_id"`
	Candidates []StatementCandidate `json:"candidates"`
	Skipped    int                  `json:"skipped"`
}
