package models

import "time"

// RedemptionTerm describes when an investment can be redeemed.
type RedemptionTerm string

const (
	RedemptionDaily      RedemptionTerm = "daily"
	RedemptionAtMaturity RedemptionTerm = "at_maturity"
)

// ValidRedemptionTerm returns true if t is a known redemption term.
func ValidRedemptionTerm(t RedemptionTerm) bool {
	return t == RedemptionDaily || t == RedemptionAtMaturity
}

// SyncCheckpoint is a user-supplied "real" investment value that resets the
// compounding base. When present it overrides the principal/creation date.
type SyncCheckpoint struct {
	AmountCents int64     `json:"amount_cents"`
	Date        time.Time `json:"date"`
}

// Investment represents a simulated compounding investment. AnnualPercent is
// the percentage of the fixed annual reference rate used as the yield (100 =
// exactly the reference rate). The simulation is an estimate, not a market
// feed.
type Investment struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	PersonID       string          `json:"person_id"`
	Name           string          `json:"name"`
	PrincipalCents int64           `json:"principal_cents"`
	AnnualPercent  float64         `json:"annual_percent"`
	RedemptionTerm RedemptionTerm  `json:"redemption_term"`
	CreatedAt      time.Time       `json:"created_at"`
	Checkpoint     *SyncCheckpoint `json:"checkpoint,omitempty"`
}

// InvestmentProjection is the computed current state of an investment.
type InvestmentProjection struct {
	InvestmentID        string  `json:"investment_id"`
	BaseCents           int64   `json:"base_cents"`
	ProjectedValueCents int64   `json:"projected_value_cents"`
	DailyYieldCents     int64   `json:"daily_yield_cents"`
	DaysElapsed         int     `json:"days_elapsed"`
	DailyRate           float64 `json:"daily_rate"`
}
