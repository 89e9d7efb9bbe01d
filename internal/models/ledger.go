package models

import "time"

// EntryKind categorizes a ledger entry.
type EntryKind string

const (
	EntryExpense        EntryKind = "expense"
	EntryGain           EntryKind = "gain"
	EntryCashWithdrawal EntryKind = "cash_withdrawal"
)

// validEntryKinds lists all accepted entry kinds.
var validEntryKinds = map[EntryKind]bool{
	EntryExpense:        true,
	EntryGain:           true,
	EntryCashWithdrawal: true,
}

// ValidEntryKind returns true if k is a valid ledger entry kind.
func ValidEntryKind(k EntryKind) bool {
	return validEntryKinds[k]
}

// LedgerEntry represents a single money movement. Amounts are integer
// minor-currency units (cents). An empty AccountID means cash.
type LedgerEntry struct {
	ID             string    `json:"id"`
	Kind           EntryKind `json:"kind"`
	PersonID       string    `json:"person_id"`
	AccountID      string    `json:"account_id,omitempty"`
	AmountCents    int64     `json:"amount_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
	CategoryID     string    `json:"category_id,omitempty"`
	Note           string    `json:"note,omitempty"`
	PaidInCash     bool      `json:"paid_in_cash,omitempty"`
	InvestmentFlow bool      `json:"investment_flow,omitempty"`
	TransferLeg    bool      `json:"transfer_leg,omitempty"`
	TransferID     string    `json:"transfer_id,omitempty"`
	CounterpartID  string    `json:"counterpart_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsCash reports whether the entry is a cash movement (no account attached).
func (e *LedgerEntry) IsCash() bool {
	return e.AccountID == ""
}

// LedgerTotals carries the raw entries and summed totals for a date range.
// Raw entry slices are returned, not just sums, so callers can re-derive
// subsets such as per-account splits.
type LedgerTotals struct {
	Expenses        []*LedgerEntry `json:"expenses"`
	Gains           []*LedgerEntry `json:"gains"`
	CashWithdrawals []*LedgerEntry `json:"cash_withdrawals"`

	ExpenseCents        int64 `json:"expense_cents"`
	GainCents           int64 `json:"gain_cents"`
	CashWithdrawalCents int64 `json:"cash_withdrawal_cents"`
}
