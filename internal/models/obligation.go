package models

import "time"

// Settlement links an obligation template to the concrete ledger entry that
// paid/received it for one cycle. The three fields move together as a unit:
// a template either has a full settlement or none.
type Settlement struct {
	EntryID  string    `json:"entry_id"`
	CycleKey string    `json:"cycle_key"`
	Date     time.Time `json:"date"`
}

// ObligationTemplate is a recurring expense or gain blueprint (e.g. "Rent")
// that repeats every calendar month, distinct from its monthly settlement
// entries. DueDay is 1-31 and may exceed the length of some months; it is
// clamped only when suggesting an occurrence date.
type ObligationTemplate struct {
	ID               string      `json:"id"`
	PersonID         string      `json:"person_id"`
	Kind             EntryKind   `json:"kind"`
	Name             string      `json:"name"`
	AmountCents      int64       `json:"amount_cents"`
	DueDay           int         `json:"due_day"`
	CategoryID       string      `json:"category_id,omitempty"`
	RemindersEnabled bool        `json:"reminders_enabled,omitempty"`
	Settlement       *Settlement `json:"settlement,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Settled reports whether the template currently carries a settlement lock.
func (t *ObligationTemplate) Settled() bool {
	return t.Settlement != nil
}

// ObligationStatus describes a template's settlement state for one cycle.
type ObligationStatus struct {
	TemplateID        string     `json:"template_id"`
	CycleKey          string     `json:"cycle_key"`
	SettledThisCycle  bool       `json:"settled_this_cycle"`
	SettlementEntryID string     `json:"settlement_entry_id,omitempty"`
	SettlementDate    *time.Time `json:"settlement_date,omitempty"`
	SuggestedDate     time.Time  `json:"suggested_date"`
}
