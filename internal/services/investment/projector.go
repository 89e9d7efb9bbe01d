// Package investment manages simulated compounding investments.
package investment

import (
	"math"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// BaseAnnualReferenceRate is the fixed annual rate used as the 100% baseline
// for yield simulation. An investment with AnnualPercent 100 compounds at
// exactly this rate.
const BaseAnnualReferenceRate = 0.1375

// BaseValue returns the compounding base: the manual-sync checkpoint amount
// when one exists, else the principal.
func BaseValue(inv *models.Investment) int64 {
	if inv.Checkpoint != nil {
		return inv.Checkpoint.AmountCents
	}
	return inv.PrincipalCents
}

// BaseDate returns the date compounding starts from: the checkpoint date when
// one exists, else the creation date.
func BaseDate(inv *models.Investment) time.Time {
	if inv.Checkpoint != nil {
		return inv.Checkpoint.Date
	}
	return inv.CreatedAt
}

// DailyRate converts the investment's percentage of the reference rate into a
// simple daily rate. Non-positive percentages yield zero.
func DailyRate(annualPercent float64) float64 {
	if annualPercent <= 0 {
		return 0
	}
	return BaseAnnualReferenceRate * (annualPercent / 100) / 365
}

// DaysElapsed counts whole days between the base date and now, never
// negative.
func DaysElapsed(inv *models.Investment, now time.Time) int {
	days := int(now.Sub(BaseDate(inv)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ProjectedValue compounds the base value daily up to now. A zero rate
// returns the base unchanged.
func ProjectedValue(inv *models.Investment, now time.Time) int64 {
	base := BaseValue(inv)
	rate := DailyRate(inv.AnnualPercent)
	if rate == 0 {
		return base
	}
	days := DaysElapsed(inv, now)
	if days == 0 {
		return base
	}
	return int64(math.Round(float64(base) * math.Pow(1+rate, float64(days))))
}

// DailyYield is the simulated earnings of one day at the current base.
func DailyYield(inv *models.Investment) int64 {
	return int64(math.Round(float64(BaseValue(inv)) * DailyRate(inv.AnnualPercent)))
}

// Project computes the full current state of an investment.
func Project(inv *models.Investment, now time.Time) *models.InvestmentProjection {
	return &models.InvestmentProjection{
		InvestmentID:        inv.ID,
		BaseCents:           BaseValue(inv),
		ProjectedValueCents: ProjectedValue(inv, now),
		DailyYieldCents:     DailyYield(inv),
		DaysElapsed:         DaysElapsed(inv, now),
		DailyRate:           DailyRate(inv.AnnualPercent),
	}
}
