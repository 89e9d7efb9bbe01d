package models

import "time"

// MonthlyBalanceSnapshot stores the opening balance of one account for one
// calendar month, keyed by (person, account, year, month). Upsert semantics;
// at most one record per key. An account without a snapshot for a month has
// an unknown balance, never an assumed zero.
type MonthlyBalanceSnapshot struct {
	PersonID     string    `json:"person_id"`
	AccountID    string    `json:"account_id"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	OpeningCents int64     `json:"opening_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountBalance is the reconciled balance of one account for one month.
type AccountBalance struct {
	AccountID          string `json:"account_id"`
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	OpeningCents       int64  `json:"opening_cents"`
	GainCents          int64  `json:"gain_cents"`
	ExpenseCents       int64  `json:"expense_cents"`
	InvestedDeltaCents int64  `json:"invested_delta_cents"`
	BalanceCents       int64  `json:"balance_cents"`
}
